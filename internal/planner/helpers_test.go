package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"babymenu/internal/catalog"
)

// memRepo stores the state as JSON so tests see the same copy semantics as
// a real repository.
type memRepo struct {
	data    []byte
	saves   int
	failErr error
}

func (r *memRepo) Load(ctx context.Context) (*State, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	st := NewState()
	if r.data == nil {
		return st, nil
	}
	if err := json.Unmarshal(r.data, st); err != nil {
		return nil, err
	}
	st.Normalize()
	return st, nil
}

func (r *memRepo) Save(ctx context.Context, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	r.data = data
	r.saves++
	return nil
}

// fixedClock is Wednesday 2024-01-10, noon UTC. Its week runs from Sunday
// 2024-01-07 to Saturday 2024-01-13.
var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	ctx   context.Context
	repo  *memRepo
	svc   *Service
	child Child
}

// newFixture creates a service with one 9-month-old child and the given
// fruit catalog.
func newFixture(t *testing.T, foods ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := &memRepo{}

	svc, err := NewService(ctx, repo, catalog.Default(), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	child, err := svc.AddChild(ctx, "mia", "girl", "2023-04-02")
	if err != nil {
		t.Fatalf("Failed to add child: %v", err)
	}
	for _, f := range foods {
		if _, err := svc.AddFood(ctx, child.ID, f, catalog.Fruits, NeverConfirm); err != nil {
			t.Fatalf("Failed to add food %s: %v", f, err)
		}
	}
	return &fixture{ctx: ctx, repo: repo, svc: svc, child: child}
}

func (f *fixture) state(t *testing.T) *State {
	t.Helper()
	st, err := f.repo.Load(f.ctx)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}
	return st
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("Expected error %v, got %v", target, err)
	}
}
