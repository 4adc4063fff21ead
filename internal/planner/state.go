package planner

import (
	"context"
	"time"

	"babymenu/internal/catalog"
)

// Gender only selects the display theme.
type Gender string

const (
	Boy  Gender = "boy"
	Girl Gender = "girl"
)

// Child is a tracked baby.
type Child struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	BirthDate string    `json:"birthDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedingDay records the confirmed feedings of one day.
type FeedingDay struct {
	Count int      `json:"count"`
	Items []string `json:"items"`
}

// State is the whole persisted record. Every per-child map is keyed by
// Child.ID; date keys use calendar.ISODate.
type State struct {
	Children        []Child                                `json:"children"`
	Foods           map[string][]string                    `json:"foods"`
	FoodCategories  map[string]map[string]catalog.Category `json:"foodCategories"`
	Overrides       map[string]map[string]string           `json:"overrides"`
	FeedingHistory  map[string]map[string]FeedingDay       `json:"feedingHistory"`
	SelectedChildID string                                 `json:"selectedChildId,omitempty"`
}

// Repository loads and saves the whole state record. Every service
// operation is one Load followed by at most one Save.
type Repository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st *State) error
}

// NewState returns an empty state.
func NewState() *State {
	st := &State{}
	st.Normalize()
	return st
}

// Normalize replaces absent collections with empty ones. Repositories call
// it after decoding so older or partial records load cleanly.
func (st *State) Normalize() {
	if st.Children == nil {
		st.Children = []Child{}
	}
	if st.Foods == nil {
		st.Foods = make(map[string][]string)
	}
	if st.FoodCategories == nil {
		st.FoodCategories = make(map[string]map[string]catalog.Category)
	}
	if st.Overrides == nil {
		st.Overrides = make(map[string]map[string]string)
	}
	if st.FeedingHistory == nil {
		st.FeedingHistory = make(map[string]map[string]FeedingDay)
	}
}

// Child returns the child with id.
func (st *State) Child(id string) (Child, bool) {
	for _, c := range st.Children {
		if c.ID == id {
			return c, true
		}
	}
	return Child{}, false
}

// deleteChild removes the child and every collection keyed by its id.
func (st *State) deleteChild(id string) bool {
	idx := -1
	for i, c := range st.Children {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	st.Children = append(st.Children[:idx], st.Children[idx+1:]...)
	delete(st.Foods, id)
	delete(st.FoodCategories, id)
	delete(st.Overrides, id)
	delete(st.FeedingHistory, id)
	return true
}

// overridesFor returns the child's override map, creating it when asked.
func (st *State) overridesFor(childID string, create bool) map[string]string {
	m := st.Overrides[childID]
	if m == nil && create {
		m = make(map[string]string)
		st.Overrides[childID] = m
	}
	return m
}

func (st *State) hasOverrides(childID string) bool {
	return len(st.Overrides[childID]) > 0
}

func (st *State) categoryOf(childID, food string) catalog.Category {
	if c, ok := st.FoodCategories[childID][food]; ok {
		return c
	}
	return catalog.Other
}

func containsFood(foods []string, name string) bool {
	for _, f := range foods {
		if f == name {
			return true
		}
	}
	return false
}
