package services

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"confprogram/internal/domain"
)

// Tutorials run two 90 minute slots separated by a 15 minute break.
// Workshops run four, with an hour for lunch after the second.
const (
	tutorialSecondSlot = 105 * time.Minute

	workshopSecondSlot = 105 * time.Minute
	workshopThirdSlot  = 255 * time.Minute
	workshopFourthSlot = 360 * time.Minute
)

// sessionStartTimes expands a session's published start into the start
// of every slot it occupies.
func sessionStartTimes(kind domain.SessionKind, start time.Time) []time.Time {
	switch kind {
	case domain.KindTutorial:
		return []time.Time{start, start.Add(tutorialSecondSlot)}
	case domain.KindWorkshop:
		return []time.Time{
			start,
			start.Add(workshopSecondSlot),
			start.Add(workshopThirdSlot),
			start.Add(workshopFourthSlot),
		}
	default:
		return []time.Time{start}
	}
}

// MergeBreaks folds the per-room break entries of the schedule document
// into one entry per logical break. Entries merge when they share start,
// end, and description; merged entries list every room, and both group
// order and room order follow first appearance in the input. Entries
// missing either time are dropped.
func MergeBreaks(breaks []domain.PretalxScheduleBreak) ([]domain.ScheduleBreak, error) {
	type groupKey struct {
		start       int64
		end         int64
		description string
	}

	var order []groupKey
	grouped := make(map[groupKey]*domain.ScheduleBreak)
	for _, b := range breaks {
		if b.Slot.Start == nil || b.Slot.End == nil {
			continue
		}
		room, err := domain.ParseRoom(string(b.Slot.Room))
		if err != nil {
			return nil, fmt.Errorf("merge breaks: %w", err)
		}
		key := groupKey{
			start:       b.Slot.Start.UnixNano(),
			end:         b.Slot.End.UnixNano(),
			description: string(b.Description),
		}
		g, ok := grouped[key]
		if !ok {
			g = &domain.ScheduleBreak{
				EventType: domain.EventKindBreak,
				Title:     string(b.Description),
				Duration:  int(b.Slot.End.Sub(*b.Slot.Start).Minutes()),
				Start:     *b.Slot.Start,
			}
			grouped[key] = g
			order = append(order, key)
		}
		g.Rooms = append(g.Rooms, room)
	}

	out := make([]domain.ScheduleBreak, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

// BuildSchedule renders the day-by-day schedule from published sessions,
// their speakers, and the merged breaks. Multi-slot sessions appear once
// per occupied slot with the per-slot share of their duration. Within a
// day, events are ordered by start; breaks sort ahead of sessions
// starting at the same time. Unscheduled sessions are left out.
func BuildSchedule(sessions []*domain.Session, speakers map[string]*domain.Speaker, breaks []domain.ScheduleBreak) (*domain.Schedule, error) {
	events := make([]domain.ScheduleEvent, 0, len(breaks)+len(sessions))
	for _, b := range breaks {
		events = append(events, b)
	}

	for _, s := range sessions {
		if !s.Scheduled() {
			continue
		}
		room, err := domain.ParseRoom(*s.Room)
		if err != nil {
			return nil, fmt.Errorf("schedule session %s: %w", s.Code, err)
		}
		total, _ := strconv.Atoi(s.Duration)

		embedded := make([]domain.ScheduleSpeaker, 0, len(s.Speakers))
		for _, code := range s.Speakers {
			sp, ok := speakers[code]
			if !ok {
				continue
			}
			embedded = append(embedded, domain.ScheduleSpeaker{
				Code:       sp.Code,
				Name:       sp.Name,
				Avatar:     sp.Avatar,
				Slug:       sp.Slug,
				WebsiteURL: sp.WebsiteURL,
			})
		}

		for _, start := range sessionStartTimes(s.Kind, *s.Start) {
			events = append(events, domain.ScheduleSession{
				EventType:   domain.EventKindSession,
				Code:        s.Code,
				Slug:        s.Slug,
				Title:       s.Title,
				SessionType: s.SessionType,
				Speakers:    embedded,
				Tweet:       s.Tweet,
				Level:       s.Level,
				Duration:    total / s.Kind.SlotCount(),
				Rooms:       []domain.Room{room},
				Start:       start,
				WebsiteURL:  s.WebsiteURL,
			})
		}
	}

	slices.SortStableFunc(events, func(a, b domain.ScheduleEvent) int {
		return a.EventStart().Compare(b.EventStart())
	})

	days := make(map[string]*domain.DaySchedule)
	for _, ev := range events {
		date := ev.EventStart().Format("2006-01-02")
		day, ok := days[date]
		if !ok {
			day = &domain.DaySchedule{Rooms: []domain.Room{}}
			days[date] = day
		}
		day.Events = append(day.Events, ev)
		for _, room := range ev.EventRooms() {
			if !slices.Contains(day.Rooms, room) {
				day.Rooms = append(day.Rooms, room)
			}
		}
	}
	for _, day := range days {
		domain.SortRooms(day.Rooms)
	}
	return &domain.Schedule{Days: days}, nil
}
