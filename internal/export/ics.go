// Package export renders the assembled schedule into exchange formats.
package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"confprogram/internal/domain"
)

// Calendar renders the schedule as an iCalendar feed with one VEVENT per
// schedule entry. Multi-slot sessions appear once per occupied slot, with
// a per-code slot counter in the UID so every VEVENT stays unique across
// the feed. Timestamps are taken from the schedule itself, keeping the
// output byte-stable between runs over the same dataset.
func Calendar(schedule *domain.Schedule, event string) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//confprogram//" + event + "//EN")

	slotCounts := make(map[string]int)
	breakCount := 0
	for _, date := range schedule.Dates() {
		for _, entry := range schedule.Days[date].Events {
			switch e := entry.(type) {
			case domain.ScheduleSession:
				slotCounts[e.Code]++
				ev := cal.AddEvent(fmt.Sprintf("%s-%d@%s", e.Code, slotCounts[e.Code], event))
				ev.SetDtStampTime(e.Start)
				ev.SetStartAt(e.Start)
				ev.SetEndAt(e.Start.Add(time.Duration(e.Duration) * time.Minute))
				ev.SetSummary(e.Title)
				ev.SetLocation(roomList(e.Rooms))
				if e.Tweet != "" {
					ev.SetDescription(e.Tweet)
				}
				ev.SetURL(e.WebsiteURL)
			case domain.ScheduleBreak:
				breakCount++
				ev := cal.AddEvent(fmt.Sprintf("break-%d@%s", breakCount, event))
				ev.SetDtStampTime(e.Start)
				ev.SetStartAt(e.Start)
				ev.SetEndAt(e.Start.Add(time.Duration(e.Duration) * time.Minute))
				ev.SetSummary(e.Title)
				ev.SetLocation(roomList(e.Rooms))
			default:
				return nil, fmt.Errorf("unknown schedule event type %T", entry)
			}
		}
	}
	return []byte(cal.Serialize()), nil
}

func roomList(rooms []domain.Room) string {
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
