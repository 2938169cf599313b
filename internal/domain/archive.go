package domain

import (
	"context"
	"time"
)

// Snapshot records one raw resource fetch: what was downloaded, how many
// items it held, and the payload itself for later diffing.
type Snapshot struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Resource  string    `json:"resource"`
	ItemCount int       `json:"item_count"`
	Checksum  string    `json:"checksum"`
	Payload   []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Publication records one published dataset build.
type Publication struct {
	ID             string    `json:"id"`
	Event          string    `json:"event"`
	Sessions       int       `json:"sessions"`
	Speakers       int       `json:"speakers"`
	ScheduleDays   int       `json:"schedule_days"`
	DuplicateSlugs int       `json:"duplicate_slugs"`
	PublishedAt    time.Time `json:"published_at"`
}

// ArchiveRepository keeps the history of downloads and publications. The
// archive is optional: a nil repository disables it.
type ArchiveRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	LatestSnapshot(ctx context.Context, event, resource string) (*Snapshot, error)
	SavePublication(ctx context.Context, publication *Publication) error
	LatestPublication(ctx context.Context, event string) (*Publication, error)
}
