package planner

import (
	"errors"
	"fmt"

	"babymenu/internal/catalog"
)

// Validation errors. An operation returning one of these has not changed
// the stored state.
var (
	ErrNoChildSelected  = errors.New("no child selected")
	ErrChildNotFound    = errors.New("child not found")
	ErrInvalidChild     = errors.New("invalid child")
	ErrEmptyFoodName    = errors.New("food name is empty")
	ErrDuplicateFood    = errors.New("food is already in the catalog")
	ErrFoodNotFound     = errors.New("food is not in the catalog")
	ErrFoodNotInCatalog = errors.New("override food is not in the catalog")
	ErrUnknownCategory  = errors.New("unknown food category")
	ErrChoiceOutOfRange = errors.New("choice is out of range")
	ErrNoFoods          = errors.New("no foods in the catalog")
)

// AgeRestrictionError rejects a food whose category is introduced later
// than the child's current age.
type AgeRestrictionError struct {
	Category     catalog.Category
	MinAgeMonths int
	AgeMonths    int
}

func (e *AgeRestrictionError) Error() string {
	return fmt.Sprintf("category %s is recommended from %d months, child is %d months old",
		e.Category, e.MinAgeMonths, e.AgeMonths)
}
