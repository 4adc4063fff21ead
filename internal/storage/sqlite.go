package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"babymenu/internal/planner"
	"babymenu/internal/storage/statedb"
)

// SQLiteStore keeps the state record as a JSON document in the single
// row of the planner_state table.
type SQLiteStore struct {
	queries *statedb.Queries
	now     func() time.Time
}

// NewSQLiteStore creates a store on a migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		queries: statedb.New(db),
		now:     time.Now,
	}
}

func (s *SQLiteStore) Load(ctx context.Context) (*planner.State, error) {
	row, err := s.queries.GetState(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return planner.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	return decodeState([]byte(row.Data))
}

func (s *SQLiteStore) Save(ctx context.Context, st *planner.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	err = s.queries.UpsertState(ctx, statedb.UpsertStateParams{
		Data:      string(data),
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert state: %w", err)
	}
	return nil
}
