package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"confprogram/internal/domain"
)

// DownloadService fetches the raw event resources from the source API and
// persists them for the transform step. A failed fetch aborts the whole
// run; partial downloads are never written.
type DownloadService struct {
	source  domain.ProgramSource
	store   domain.DataStore
	archive domain.ArchiveRepository
	event   string
	logger  *slog.Logger
}

// NewDownloadService creates a DownloadService. The archive is optional;
// pass nil to disable snapshot history.
func NewDownloadService(source domain.ProgramSource, store domain.DataStore, archive domain.ArchiveRepository, event string, logger *slog.Logger) *DownloadService {
	return &DownloadService{
		source:  source,
		store:   store,
		archive: archive,
		event:   event,
		logger:  logger,
	}
}

// Run downloads submissions, speakers, and the released schedule.
func (s *DownloadService) Run(ctx context.Context) (*domain.DownloadReport, error) {
	started := time.Now()

	submissions, err := s.source.Submissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	if err := s.saveItems(ctx, domain.ResourceSubmissions, submissions); err != nil {
		return nil, err
	}

	speakers, err := s.source.Speakers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch speakers: %w", err)
	}
	if err := s.saveItems(ctx, domain.ResourceSpeakers, speakers); err != nil {
		return nil, err
	}

	schedule, err := s.source.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	if err := s.persist(ctx, domain.ResourceSchedules, 1, []byte(schedule)); err != nil {
		return nil, err
	}

	report := &domain.DownloadReport{
		Event: s.event,
		Counts: map[string]int{
			domain.ResourceSubmissions: len(submissions),
			domain.ResourceSpeakers:    len(speakers),
			domain.ResourceSchedules:   1,
		},
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	s.logger.Info("download finished",
		"event", s.event,
		"submissions", len(submissions),
		"speakers", len(speakers),
	)
	return report, nil
}

func (s *DownloadService) saveItems(ctx context.Context, resource string, items []json.RawMessage) error {
	if items == nil {
		items = []json.RawMessage{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", resource, err)
	}
	return s.persist(ctx, resource, len(items), data)
}

func (s *DownloadService) persist(ctx context.Context, resource string, count int, data []byte) error {
	if err := s.store.SaveRaw(resource, data); err != nil {
		return fmt.Errorf("save %s: %w", resource, err)
	}
	if s.archive == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	snapshot := &domain.Snapshot{
		Event:     s.event,
		Resource:  resource,
		ItemCount: count,
		Checksum:  hex.EncodeToString(sum[:]),
		Payload:   data,
		FetchedAt: time.Now(),
	}
	if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("archive %s snapshot: %w", resource, err)
	}
	return nil
}
