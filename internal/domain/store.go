package domain

import "errors"

// ErrNotFound is returned by stores when a requested file or record does
// not exist.
var ErrNotFound = errors.New("not found")

// Raw resource names as stored on disk and in the archive.
const (
	ResourceSubmissions = "submissions"
	ResourceSpeakers    = "speakers"
	ResourceSchedules   = "schedules"
	ResourceYoutube     = "youtube"
)

// Published dataset file names.
const (
	PublicSessions = "sessions.json"
	PublicSpeakers = "speakers.json"
	PublicSchedule = "schedule.json"
	PublicCalendar = "schedule.ics"
)

// DataStore persists raw API fetches and the published dataset for one
// event. Load methods report ErrNotFound for missing files.
type DataStore interface {
	SaveRaw(resource string, data []byte) error
	LoadRaw(resource string) ([]byte, error)
	SavePublicJSON(name string, v any) error
	SavePublicRaw(name string, data []byte) error
	LoadPublic(name string) ([]byte, error)
}
