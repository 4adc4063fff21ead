package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"babymenu/internal/calendar"
)

// Overrides returns a copy of the child's manual picks keyed by ISO date.
func (s *Service) Overrides(ctx context.Context, childID string) (map[string]string, error) {
	out := make(map[string]string)
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		for k, v := range st.Overrides[childID] {
			out[k] = v
		}
		return nil
	})
	return out, err
}

// SetOverride pins date to food. The food must be in the catalog now; the
// entry is kept even if the food is removed later.
func (s *Service) SetOverride(ctx context.Context, childID string, date time.Time, food string) error {
	key := calendar.FormatISO(date)
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		if !containsFood(st.Foods[childID], food) {
			return false, fmt.Errorf("%w: %s", ErrFoodNotInCatalog, food)
		}
		st.overridesFor(childID, true)[key] = food
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Override set", zap.String("child_id", childID), zap.String("date", key), zap.String("food", food))
	return nil
}

// SetOverrideChoice pins date to the choice-th food of the catalog,
// counting from 1 as the day picker does. It returns the chosen food.
func (s *Service) SetOverrideChoice(ctx context.Context, childID string, date time.Time, choice int) (string, error) {
	key := calendar.FormatISO(date)
	var food string
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		foods := st.Foods[childID]
		if len(foods) == 0 {
			return false, ErrNoFoods
		}
		if choice < 1 || choice > len(foods) {
			return false, fmt.Errorf("%w: enter a number from 1 to %d", ErrChoiceOutOfRange, len(foods))
		}
		food = foods[choice-1]
		st.overridesFor(childID, true)[key] = food
		return true, nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Override set", zap.String("child_id", childID), zap.String("date", key), zap.String("food", food))
	return food, nil
}

// ClearOverride removes the manual pick of date, if any.
func (s *Service) ClearOverride(ctx context.Context, childID string, date time.Time) error {
	key := calendar.FormatISO(date)
	return s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		overrides := st.overridesFor(childID, false)
		if _, ok := overrides[key]; !ok {
			return false, nil
		}
		delete(overrides, key)
		return true, nil
	})
}

// ClearAllOverrides drops every manual pick of the child.
func (s *Service) ClearAllOverrides(ctx context.Context, childID string) error {
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		if _, ok := st.Overrides[childID]; !ok {
			return false, nil
		}
		ResetToAutomatic(st, childID)
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Overrides cleared", zap.String("child_id", childID))
	return nil
}

// ResetToAutomatic is ClearAllOverrides: later lookups fall through to the
// live rotation.
func (s *Service) ResetToAutomatic(ctx context.Context, childID string) error {
	return s.ClearAllOverrides(ctx, childID)
}

// FillWeekAutomatically replaces all overrides with explicit rotation picks
// for the seven days of the current week.
func (s *Service) FillWeekAutomatically(ctx context.Context, childID string) error {
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		if !FillWeek(st, childID, s.today()) {
			return false, ErrNoFoods
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Week filled automatically", zap.String("child_id", childID))
	return nil
}

// ReconcileOnAdd recalculates the rest of this week against the current
// catalog, as accepted after adding a food. A child without overrides is
// left on the rotation.
func (s *Service) ReconcileOnAdd(ctx context.Context, childID string) error {
	return s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		foods := st.Foods[childID]
		if len(foods) == 0 || !st.hasOverrides(childID) {
			return false, nil
		}
		ReconcileOnAdd(st.overridesFor(childID, false), foods, s.today())
		return true, nil
	})
}

// ReconcileOnRemove recalculates the rest of this week against the current
// catalog, deleting those entries when the catalog is empty.
func (s *Service) ReconcileOnRemove(ctx context.Context, childID string) error {
	return s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		if !st.hasOverrides(childID) {
			return false, nil
		}
		ReconcileOnRemove(st.overridesFor(childID, false), st.Foods[childID], s.today())
		return true, nil
	})
}
