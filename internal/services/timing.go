package services

import (
	"slices"
	"time"

	"confprogram/internal/domain"
)

// ComputeTimingRelationships derives, for every timed session, the
// sessions running in parallel with it, the nearest upcoming and
// preceding session per room, and a next/previous pick for the
// session's own room. Sessions without both a start and an end time
// are skipped and absent from the result.
func ComputeTimingRelationships(sessions []*domain.Session) map[string]domain.Relationships {
	timed := make([]*domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Timed() {
			timed = append(timed, s)
		}
	}

	byStartAsc := slices.Clone(timed)
	slices.SortStableFunc(byStartAsc, func(a, b *domain.Session) int {
		return a.Start.Compare(*b.Start)
	})
	byStartDesc := slices.Clone(timed)
	slices.SortStableFunc(byStartDesc, func(a, b *domain.Session) int {
		return b.Start.Compare(*a.Start)
	})

	rels := make(map[string]domain.Relationships, len(timed))
	for _, s := range timed {
		after := sessionsAfter(s, byStartAsc)
		before := sessionsBefore(s, byStartDesc)
		rels[s.Code] = domain.Relationships{
			InParallel: sessionCodes(sessionsInParallel(s, timed)),
			After:      sessionCodes(after),
			Before:     sessionCodes(before),
			Next:       nextSession(s, after),
			Prev:       prevSession(s, before),
		}
	}
	return rels
}

// overlaps reports whether the two timed sessions share any time.
// Intervals are half-open, so sessions touching at a boundary do not
// overlap.
func overlaps(a, b *domain.Session) bool {
	return b.Start.Before(*a.End) && b.End.After(*a.Start)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sessionRoom(s *domain.Session) string {
	if s.Room == nil {
		return ""
	}
	return *s.Room
}

func sessionCodes(sessions []*domain.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Code)
	}
	return out
}

// sessionsInParallel keeps every other timed session overlapping s, in
// input order.
func sessionsInParallel(s *domain.Session, timed []*domain.Session) []*domain.Session {
	var out []*domain.Session
	for _, other := range timed {
		if other.Code == s.Code {
			continue
		}
		if overlaps(s, other) {
			out = append(out, other)
		}
	}
	return out
}

// sessionsAfter walks sessions in ascending start order and keeps the
// first same-day session per room that starts at or after s ends.
// Announcements do not follow other announcements. If a keynote
// survives the room filter it eclipses everything else.
func sessionsAfter(s *domain.Session, byStartAsc []*domain.Session) []*domain.Session {
	var kept []*domain.Session
	seenRooms := make(map[string]bool)
	for _, other := range byStartAsc {
		if other.Code == s.Code {
			continue
		}
		if other.Start.Before(*s.End) {
			continue
		}
		if overlaps(s, other) {
			continue
		}
		if !sameDay(*other.Start, *s.Start) {
			continue
		}
		if s.Kind == domain.KindAnnouncement && other.Kind == domain.KindAnnouncement {
			continue
		}
		room := sessionRoom(other)
		if seenRooms[room] {
			continue
		}
		seenRooms[room] = true
		kept = append(kept, other)
	}

	for _, other := range kept {
		if other.Kind == domain.KindKeynote {
			var keynotes []*domain.Session
			for _, o := range kept {
				if o.Kind == domain.KindKeynote {
					keynotes = append(keynotes, o)
				}
			}
			return keynotes
		}
	}
	return kept
}

// sessionsBefore walks sessions in descending start order and keeps
// the latest same-day session per room that starts at or before s.
// Announcements never appear in before lists.
func sessionsBefore(s *domain.Session, byStartDesc []*domain.Session) []*domain.Session {
	var kept []*domain.Session
	seenRooms := make(map[string]bool)
	for _, other := range byStartDesc {
		if other.Code == s.Code {
			continue
		}
		if other.Start.After(*s.Start) {
			continue
		}
		if overlaps(s, other) {
			continue
		}
		if !sameDay(*other.Start, *s.Start) {
			continue
		}
		if other.Kind == domain.KindAnnouncement {
			continue
		}
		room := sessionRoom(other)
		if seenRooms[room] {
			continue
		}
		seenRooms[room] = true
		kept = append(kept, other)
	}
	return kept
}

// nextSession picks the first kept follower in s's own room, or the
// first keynote when no same-room follower exists earlier in the list.
func nextSession(s *domain.Session, after []*domain.Session) *string {
	for _, other := range after {
		if sessionRoom(other) == sessionRoom(s) || other.Kind == domain.KindKeynote {
			code := other.Code
			return &code
		}
	}
	return nil
}

// prevSession picks the first kept predecessor in s's own room.
// Keynotes in other rooms do not qualify.
func prevSession(s *domain.Session, before []*domain.Session) *string {
	for _, other := range before {
		if sessionRoom(other) == sessionRoom(s) {
			code := other.Code
			return &code
		}
	}
	return nil
}
