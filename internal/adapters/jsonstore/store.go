// Package jsonstore persists raw API fetches and the published dataset as
// files under the configured data directory.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"confprogram/internal/domain"
)

// Store lays one event's data out as raw/<event>/<resource>_latest.json
// and public/<event>/<name> under the data directory.
type Store struct {
	dataDir string
	event   string
}

// New creates a Store rooted at dataDir for the given event.
func New(dataDir, event string) *Store {
	return &Store{dataDir: dataDir, event: event}
}

func (s *Store) SaveRaw(resource string, data []byte) error {
	return s.write(s.rawPath(resource), data)
}

func (s *Store) LoadRaw(resource string) ([]byte, error) {
	return s.read(s.rawPath(resource))
}

// SavePublicJSON writes v with two-space indentation. Map keys marshal in
// sorted order, which keeps the published files diff-friendly between
// runs.
func (s *Store) SavePublicJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.write(s.publicPath(name), data)
}

func (s *Store) SavePublicRaw(name string, data []byte) error {
	return s.write(s.publicPath(name), data)
}

func (s *Store) LoadPublic(name string) ([]byte, error) {
	return s.read(s.publicPath(name))
}

func (s *Store) rawPath(resource string) string {
	return filepath.Join(s.dataDir, "raw", s.event, resource+"_latest.json")
}

func (s *Store) publicPath(name string) string {
	return filepath.Join(s.dataDir, "public", s.event, name)
}

func (s *Store) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *Store) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
