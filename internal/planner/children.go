package planner

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"babymenu/internal/calendar"
)

// AddChild validates and stores a new child, gives it an empty catalog and
// selects it.
func (s *Service) AddChild(ctx context.Context, name, gender, birthDate string) (Child, error) {
	name = capitalize(strings.TrimSpace(name))
	g := Gender(strings.ToLower(strings.TrimSpace(gender)))
	birthDate = strings.TrimSpace(birthDate)

	if name == "" || gender == "" || birthDate == "" {
		return Child{}, fmt.Errorf("%w: name, gender and birth date are required", ErrInvalidChild)
	}
	if g != Boy && g != Girl {
		return Child{}, fmt.Errorf("%w: gender must be %q or %q", ErrInvalidChild, Boy, Girl)
	}
	if _, err := calendar.ParseISO(birthDate, s.now().Location()); err != nil {
		return Child{}, fmt.Errorf("%w: %v", ErrInvalidChild, err)
	}

	var child Child
	err := s.update(ctx, func(st *State) (bool, error) {
		id, err := s.newID()
		if err != nil {
			return false, err
		}
		child = Child{
			ID:        id,
			Name:      name,
			Gender:    g,
			BirthDate: birthDate,
			CreatedAt: s.now(),
		}
		st.Children = append(st.Children, child)
		st.Foods[id] = []string{}
		st.SelectedChildID = id
		return true, nil
	})
	if err != nil {
		return Child{}, err
	}

	s.mu.Lock()
	s.session.selectChild(child.ID)
	s.mu.Unlock()

	s.logger.Info("Child added", zap.String("child_id", child.ID), zap.String("name", child.Name))
	return child, nil
}

// Children lists the children in creation order.
func (s *Service) Children(ctx context.Context) ([]Child, error) {
	var out []Child
	err := s.view(ctx, func(st *State) error {
		out = append([]Child(nil), st.Children...)
		return nil
	})
	return out, err
}

// SelectChild makes id the current child and persists the choice.
func (s *Service) SelectChild(ctx context.Context, id string) (Child, error) {
	var child Child
	err := s.update(ctx, func(st *State) (bool, error) {
		c, err := requireChild(st, id)
		if err != nil {
			return false, err
		}
		child = c
		st.SelectedChildID = id
		return true, nil
	})
	if err != nil {
		return Child{}, err
	}

	s.mu.Lock()
	s.session.selectChild(id)
	s.mu.Unlock()
	return child, nil
}

// CurrentChild returns the selected child or ErrNoChildSelected.
func (s *Service) CurrentChild(ctx context.Context) (Child, error) {
	var child Child
	err := s.view(ctx, func(st *State) error {
		c, err := requireChild(st, s.session.ChildID)
		child = c
		return err
	})
	return child, err
}

// RemoveChild deletes the child with all its catalog, overrides and
// history. Removing the selected child selects the first remaining one.
func (s *Service) RemoveChild(ctx context.Context, id string) error {
	var next string
	err := s.update(ctx, func(st *State) (bool, error) {
		if _, err := requireChild(st, id); err != nil {
			return false, err
		}
		st.deleteChild(id)

		next = s.session.ChildID
		if next == id || st.SelectedChildID == id {
			next = ""
			if len(st.Children) > 0 {
				next = st.Children[0].ID
			}
			st.SelectedChildID = next
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.session.selectChild(next)
	s.mu.Unlock()

	s.logger.Info("Child removed", zap.String("child_id", id))
	return nil
}

// AgeInMonths returns the child's age today in whole months.
func (s *Service) AgeInMonths(c Child) int {
	birth, err := calendar.ParseISO(c.BirthDate, s.now().Location())
	if err != nil {
		return 0
	}
	return calendar.AgeInMonths(birth, s.today())
}

func capitalize(name string) string {
	r := []rune(strings.ToLower(name))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
