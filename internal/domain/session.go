package domain

import (
	"strings"
	"time"
)

// SessionKind classifies a session for slot expansion and schedule
// tie-break rules. It is derived from the free-text submission type:
// a case-insensitive substring match for tutorials and workshops, an
// exact match for keynotes and announcements.
type SessionKind int

const (
	KindTalk SessionKind = iota
	KindTutorial
	KindWorkshop
	KindKeynote
	KindAnnouncement
)

// ClassifyKind derives the SessionKind from a submission type string.
func ClassifyKind(submissionType string) SessionKind {
	lower := strings.ToLower(submissionType)
	switch {
	case strings.Contains(lower, "tutorial"):
		return KindTutorial
	case strings.Contains(lower, "workshop"):
		return KindWorkshop
	case submissionType == "Keynote":
		return KindKeynote
	case submissionType == "Announcements":
		return KindAnnouncement
	default:
		return KindTalk
	}
}

// SlotCount returns how many schedule slots a session of this kind occupies.
func (k SessionKind) SlotCount() int {
	switch k {
	case KindTutorial:
		return 2
	case KindWorkshop:
		return 4
	default:
		return 1
	}
}

func (k SessionKind) String() string {
	switch k {
	case KindTutorial:
		return "tutorial"
	case KindWorkshop:
		return "workshop"
	case KindKeynote:
		return "keynote"
	case KindAnnouncement:
		return "announcement"
	default:
		return "talk"
	}
}

// SessionResource is one supporting material attached to a session.
type SessionResource struct {
	Resource    string `json:"resource"`
	Description string `json:"description"`
}

// Session is one publishable schedule item as exported to the website.
// Core fields are set once when the record is built from source data; the
// relationship fields are attached by a single timing pass afterwards and
// stay nil for sessions that were never scheduled.
// swagger:model Session
type Session struct {
	Code        string            `json:"code"`
	Title       string            `json:"title"`
	Speakers    []string          `json:"speakers"`
	SessionType string            `json:"session_type"`
	Slug        string            `json:"slug"`
	Track       *string           `json:"track"`
	Abstract    string            `json:"abstract"`
	Tweet       string            `json:"tweet"`
	Duration    string            `json:"duration"`
	Level       string            `json:"level"`
	Delivery    string            `json:"delivery"`
	Resources   []SessionResource `json:"resources"`
	Room        *string           `json:"room"`
	Start       *time.Time        `json:"start"`
	End         *time.Time        `json:"end"`
	InParallel  []string          `json:"sessions_in_parallel"`
	After       []string          `json:"sessions_after"`
	Before      []string          `json:"sessions_before"`
	Next        *string           `json:"next_session"`
	Prev        *string           `json:"prev_session"`
	YoutubeURL  *string           `json:"youtube_url"`
	WebsiteURL  string            `json:"website_url"`

	Kind SessionKind `json:"-"`
}

// Timed reports whether the session has both start and end times. Only
// timed sessions take part in relationship computation.
func (s *Session) Timed() bool {
	return s.Start != nil && s.End != nil
}

// Scheduled reports whether the session occupies a room at a known start
// time. Unscheduled sessions stay in the flat list but never appear in the
// day-by-day schedule.
func (s *Session) Scheduled() bool {
	return s.Room != nil && s.Start != nil
}

// Relationships is the cross-reference bundle the timing engine computes
// for one session: overlapping sessions, the next session per room in both
// directions, and the nearest neighbors in the session's own room.
type Relationships struct {
	InParallel []string
	After      []string
	Before     []string
	Next       *string
	Prev       *string
}
