// Package storage holds the planner.Repository implementations.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"babymenu/internal/planner"
)

// FileStore keeps the whole planner state in one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore and ensures the parent directory exists.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the state. A missing file is an empty state.
func (s *FileStore) Load(ctx context.Context) (*planner.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return planner.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return decodeState(data)
}

// Save writes the state to a temporary file and renames it over the old
// one, so a crash never leaves a half-written record.
func (s *FileStore) Save(ctx context.Context, st *planner.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func decodeState(data []byte) (*planner.State, error) {
	st := planner.NewState()
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	st.Normalize()
	return st, nil
}
