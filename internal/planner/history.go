package planner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"babymenu/internal/calendar"
)

// RecordFeeding appends food to today's feeding record of the child and
// returns the updated record. Repeated feedings accumulate.
func (s *Service) RecordFeeding(ctx context.Context, childID, food string) (FeedingDay, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return FeedingDay{}, ErrEmptyFoodName
	}

	key := calendar.FormatISO(s.today())
	var day FeedingDay
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		history := st.FeedingHistory[childID]
		if history == nil {
			history = make(map[string]FeedingDay)
			st.FeedingHistory[childID] = history
		}
		day = history[key]
		day.Count++
		day.Items = append(day.Items, food)
		history[key] = day
		return true, nil
	})
	if err != nil {
		return FeedingDay{}, err
	}

	s.logger.Info("Feeding recorded",
		zap.String("child_id", childID),
		zap.String("date", key),
		zap.String("food", food),
		zap.Int("count", day.Count))
	return day, nil
}

// History returns a copy of the child's feeding history keyed by ISO date.
func (s *Service) History(ctx context.Context, childID string) (map[string]FeedingDay, error) {
	out := make(map[string]FeedingDay)
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		for k, v := range st.FeedingHistory[childID] {
			out[k] = FeedingDay{Count: v.Count, Items: append([]string(nil), v.Items...)}
		}
		return nil
	})
	return out, err
}

// ResetHistory deletes the child's whole feeding history.
func (s *Service) ResetHistory(ctx context.Context, childID string) error {
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		delete(st.FeedingHistory, childID)
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Feeding history reset", zap.String("child_id", childID))
	return nil
}

// ResetAllHistory deletes the feeding history of every child.
func (s *Service) ResetAllHistory(ctx context.Context) error {
	err := s.update(ctx, func(st *State) (bool, error) {
		st.FeedingHistory = make(map[string]map[string]FeedingDay)
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("All feeding history reset")
	return nil
}
