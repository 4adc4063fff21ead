package planner

// Session is the per-process selection state: the selected child, the
// cached food of today and the week navigation offset. The offset is never
// persisted.
type Session struct {
	ChildID    string
	TodayFood  string
	TodayValid bool
	WeekOffset int
}

func (s *Session) selectChild(id string) {
	if s.ChildID != id {
		s.invalidateToday()
	}
	s.ChildID = id
}

func (s *Session) cacheToday(food string) {
	s.TodayFood = food
	s.TodayValid = true
}

func (s *Session) invalidateToday() {
	s.TodayFood = ""
	s.TodayValid = false
}
