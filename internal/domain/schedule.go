package domain

import (
	"slices"
	"time"
)

// Break is one raw per-room break taken from the schedule document. Breaks
// that share start, end, and description across rooms describe the same
// logical break and get merged before publication.
type Break struct {
	Room        string
	Description string
	Start       time.Time
	End         time.Time
}

// EventKind distinguishes the entry types of a day's schedule.
type EventKind string

const (
	EventKindSession EventKind = "session"
	EventKindBreak   EventKind = "break"
)

// ScheduleSpeaker is the embedded speaker summary on a schedule entry.
type ScheduleSpeaker struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Slug       string `json:"slug"`
	WebsiteURL string `json:"website_url"`
}

// ScheduleSession is one concrete slot a session occupies in the rendered
// schedule. Tutorials and workshops appear once per slot; Duration is the
// per-slot share of the session's total duration.
type ScheduleSession struct {
	EventType   EventKind         `json:"event_type"`
	Code        string            `json:"code"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	SessionType string            `json:"session_type"`
	Speakers    []ScheduleSpeaker `json:"speakers"`
	Tweet       string            `json:"tweet"`
	Level       string            `json:"level"`
	Duration    int               `json:"duration"`
	Rooms       []Room            `json:"rooms"`
	Start       time.Time         `json:"start"`
	WebsiteURL  string            `json:"website_url"`
}

// EventStart implements ScheduleEvent.
func (s ScheduleSession) EventStart() time.Time { return s.Start }

// EventRooms implements ScheduleEvent.
func (s ScheduleSession) EventRooms() []Room { return s.Rooms }

// ScheduleBreak is one logical break merged across the rooms it runs in.
type ScheduleBreak struct {
	EventType EventKind `json:"event_type"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	Rooms     []Room    `json:"rooms"`
	Start     time.Time `json:"start"`
}

// EventStart implements ScheduleEvent.
func (b ScheduleBreak) EventStart() time.Time { return b.Start }

// EventRooms implements ScheduleEvent.
func (b ScheduleBreak) EventRooms() []Room { return b.Rooms }

// ScheduleEvent is either a ScheduleSession or a ScheduleBreak.
type ScheduleEvent interface {
	EventStart() time.Time
	EventRooms() []Room
}

// DaySchedule holds one day's rooms in use and its entries. Events are kept
// in ascending start order; equal starts keep insertion order.
type DaySchedule struct {
	Rooms  []Room          `json:"rooms"`
	Events []ScheduleEvent `json:"events"`
}

// Schedule is the full rendered schedule keyed by ISO date. JSON
// serialization emits days in date order since map keys marshal sorted.
// swagger:model Schedule
type Schedule struct {
	Days map[string]*DaySchedule `json:"days"`
}

// Dates returns the schedule's days in ascending date order.
func (s *Schedule) Dates() []string {
	dates := make([]string, 0, len(s.Days))
	for d := range s.Days {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}
