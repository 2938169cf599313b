package domain

import (
	"context"
	"encoding/json"
)

// ProgramSource fetches raw event data from the source API. List resources
// come back as the accumulated items of every page; the schedule is one
// document. Items stay raw here: decoding into DTOs happens at transform
// time so the downloaded files mirror the API exactly.
type ProgramSource interface {
	Submissions(ctx context.Context) ([]json.RawMessage, error)
	Speakers(ctx context.Context) ([]json.RawMessage, error)
	Schedule(ctx context.Context) (json.RawMessage, error)
}
