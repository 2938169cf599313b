package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confprogram/internal/domain"
)

type archiveRepository struct {
	DB *sql.DB
}

func NewArchiveRepository(db *sql.DB) domain.ArchiveRepository {
	return &archiveRepository{
		DB: db,
	}
}

func (r *archiveRepository) SaveSnapshot(ctx context.Context, s *domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (event, resource, item_count, checksum, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.Event, s.Resource, s.ItemCount, s.Checksum, s.Payload, s.FetchedAt,
	).Scan(&s.ID)
}

func (r *archiveRepository) LatestSnapshot(ctx context.Context, event, resource string) (*domain.Snapshot, error) {
	query := `
		SELECT id, event, resource, item_count, checksum, payload, fetched_at
		FROM snapshots
		WHERE event = $1 AND resource = $2
		ORDER BY fetched_at DESC
		LIMIT 1
	`
	s := &domain.Snapshot{}
	err := r.DB.QueryRowContext(ctx, query, event, resource).Scan(
		&s.ID, &s.Event, &s.Resource, &s.ItemCount, &s.Checksum, &s.Payload, &s.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *archiveRepository) SavePublication(ctx context.Context, p *domain.Publication) error {
	query := `
		INSERT INTO publications (event, sessions, speakers, schedule_days, duplicate_slugs, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Event, p.Sessions, p.Speakers, p.ScheduleDays, p.DuplicateSlugs, p.PublishedAt,
	).Scan(&p.ID)
}

func (r *archiveRepository) LatestPublication(ctx context.Context, event string) (*domain.Publication, error) {
	query := `
		SELECT id, event, sessions, speakers, schedule_days, duplicate_slugs, published_at
		FROM publications
		WHERE event = $1
		ORDER BY published_at DESC
		LIMIT 1
	`
	p := &domain.Publication{}
	err := r.DB.QueryRowContext(ctx, query, event).Scan(
		&p.ID, &p.Event, &p.Sessions, &p.Speakers, &p.ScheduleDays, &p.DuplicateSlugs, &p.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
