// Package planner is the feeding planner core: the state record, the day
// resolver, the override store and the reconciliation policies that keep
// overrides consistent with a changing catalog.
package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"babymenu/internal/calendar"
	"babymenu/internal/catalog"
)

// Service runs every planner operation as load -> mutate -> save against a
// Repository. Operations are serialized, so front ends sharing one Service
// never interleave a read-modify-write.
type Service struct {
	mu         sync.Mutex
	repo       Repository
	categories *catalog.Table
	logger     *zap.Logger
	now        func() time.Time
	newID      func() (string, error)
	session    Session
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service and restores the persisted child selection.
// A nil table means catalog.Default().
func NewService(ctx context.Context, repo Repository, categories *catalog.Table, opts ...Option) (*Service, error) {
	if categories == nil {
		categories = catalog.Default()
	}
	s := &Service{
		repo:       repo,
		categories: categories,
		logger:     zap.NewNop(),
		now:        time.Now,
		newID:      newChildID,
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Child(st.SelectedChildID); ok {
		s.session.ChildID = st.SelectedChildID
		s.logger.Debug("Restored child selection", zap.String("child_id", st.SelectedChildID))
	}
	return s, nil
}

func newChildID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate child id: %w", err)
	}
	return id.String(), nil
}

// Categories returns the category table the service validates against.
func (s *Service) Categories() *catalog.Table {
	return s.categories
}

// CurrentDate returns today's date on the service clock.
func (s *Service) CurrentDate() time.Time {
	return s.today()
}

func (s *Service) today() time.Time {
	return calendar.Day(s.now())
}

func (s *Service) load(ctx context.Context) (*State, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	st.Normalize()
	return st, nil
}

// view runs fn on a freshly loaded state without saving it.
func (s *Service) view(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(st)
}

// update runs fn on a freshly loaded state and saves it once when fn
// reports a change. Nothing is saved when fn fails.
func (s *Service) update(ctx context.Context, fn func(st *State) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil || !changed {
		return err
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.session.invalidateToday()
	return nil
}

func requireChild(st *State, childID string) (Child, error) {
	if childID == "" {
		return Child{}, ErrNoChildSelected
	}
	c, ok := st.Child(childID)
	if !ok {
		return Child{}, fmt.Errorf("%w: %s", ErrChildNotFound, childID)
	}
	return c, nil
}

// Session returns a copy of the current session.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// OpenPlanner resets the week navigation to the current week.
func (s *Service) OpenPlanner() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.WeekOffset = 0
}

// ShiftWeek moves the week navigation by delta weeks and returns the new
// offset.
func (s *Service) ShiftWeek(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.WeekOffset += delta
	return s.session.WeekOffset
}

// ResolveDay returns the effective food of childID on date.
func (s *Service) ResolveDay(ctx context.Context, childID string, date time.Time) (Resolution, error) {
	var res Resolution
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		res = ResolveDay(st, childID, date)
		return nil
	})
	return res, err
}

// Today resolves today's food and caches it in the session when childID is
// the selected child.
func (s *Service) Today(ctx context.Context, childID string) (Resolution, error) {
	var res Resolution
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		res = ResolveDay(st, childID, s.today())
		if childID == s.session.ChildID {
			s.session.cacheToday(res.Food)
		}
		return nil
	})
	return res, err
}

// Week resolves the week offset weeks away from the current one. Resolving
// a week that contains today refreshes the session's cached food of today.
func (s *Service) Week(ctx context.Context, childID string, offset int) (WeekPlan, error) {
	var plan WeekPlan
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		today := s.today()
		plan = ResolveWeek(st, childID, today.AddDate(0, 0, 7*offset), today)
		if childID != s.session.ChildID {
			return nil
		}
		for _, d := range plan.Days {
			if d.IsToday {
				s.session.cacheToday(d.Food)
			}
		}
		return nil
	})
	return plan, err
}
