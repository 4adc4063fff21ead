package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"babymenu/internal/catalog"
)

// CatalogEntry is one food of a child's catalog.
type CatalogEntry struct {
	Name     string
	Category catalog.Category
}

// Foods returns the child's catalog in rotation order.
func (s *Service) Foods(ctx context.Context, childID string) ([]CatalogEntry, error) {
	var out []CatalogEntry
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		for _, f := range st.Foods[childID] {
			out = append(out, CatalogEntry{Name: f, Category: st.categoryOf(childID, f)})
		}
		return nil
	})
	return out, err
}

// HasOverrides reports whether a catalog change would ask for consent.
func (s *Service) HasOverrides(ctx context.Context, childID string) (bool, error) {
	var has bool
	err := s.view(ctx, func(st *State) error {
		if _, err := requireChild(st, childID); err != nil {
			return err
		}
		has = st.hasOverrides(childID)
		return nil
	})
	return has, err
}

// AddFood appends name to the catalog. When the child has overrides,
// confirm decides whether the rest of this week is recalculated with the
// new catalog; both changes are saved together. It reports whether the
// week was recalculated.
func (s *Service) AddFood(ctx context.Context, childID, name string, category catalog.Category, confirm Confirm) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyFoodName
	}
	info, ok := s.categories.Lookup(category)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	var recalculated bool
	err := s.update(ctx, func(st *State) (bool, error) {
		child, err := requireChild(st, childID)
		if err != nil {
			return false, err
		}
		if age := s.AgeInMonths(child); age < info.MinAge {
			return false, &AgeRestrictionError{Category: category, MinAgeMonths: info.MinAge, AgeMonths: age}
		}
		if containsFood(st.Foods[childID], name) {
			return false, fmt.Errorf("%w: %s", ErrDuplicateFood, name)
		}

		st.Foods[childID] = append(st.Foods[childID], name)
		if st.FoodCategories[childID] == nil {
			st.FoodCategories[childID] = make(map[string]catalog.Category)
		}
		st.FoodCategories[childID][name] = category

		if st.hasOverrides(childID) && confirm != nil && confirm() {
			ReconcileOnAdd(st.overridesFor(childID, true), st.Foods[childID], s.today())
			recalculated = true
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("Food added",
		zap.String("child_id", childID),
		zap.String("food", name),
		zap.String("category", string(category)),
		zap.Bool("recalculated", recalculated))
	return recalculated, nil
}

// RemoveFood drops name from the catalog and its category mapping. With
// overrides present, confirm decides whether the rest of this week is
// recalculated against the remaining catalog.
func (s *Service) RemoveFood(ctx context.Context, childID, name string, confirm Confirm) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyFoodName
	}

	var recalculated bool
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, childID); err != nil {
			return false, err
		}
		foods := st.Foods[childID]
		if !containsFood(foods, name) {
			return false, fmt.Errorf("%w: %s", ErrFoodNotFound, name)
		}

		kept := make([]string, 0, len(foods)-1)
		for _, f := range foods {
			if f != name {
				kept = append(kept, f)
			}
		}
		st.Foods[childID] = kept
		delete(st.FoodCategories[childID], name)

		if st.hasOverrides(childID) && confirm != nil && confirm() {
			ReconcileOnRemove(st.overridesFor(childID, true), kept, s.today())
			recalculated = true
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("Food removed",
		zap.String("child_id", childID),
		zap.String("food", name),
		zap.Bool("recalculated", recalculated))
	return recalculated, nil
}
