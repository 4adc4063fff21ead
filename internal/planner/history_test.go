package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordFeeding(t *testing.T) {
	f := newFixture(t, "Apple", "Banana")

	var last FeedingDay
	for i := 0; i < 3; i++ {
		var err error
		last, err = f.svc.RecordFeeding(f.ctx, f.child.ID, "Apple")
		if err != nil {
			t.Fatalf("Failed to record feeding: %v", err)
		}
	}

	want := FeedingDay{Count: 3, Items: []string{"Apple", "Apple", "Apple"}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Errorf("Unexpected feeding day (-want +got):\n%s", diff)
	}

	history, err := f.svc.History(f.ctx, f.child.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff(map[string]FeedingDay{"2024-01-10": want}, history); diff != "" {
		t.Errorf("Unexpected history (-want +got):\n%s", diff)
	}

	_, err = f.svc.RecordFeeding(f.ctx, f.child.ID, " ")
	assertErrorIs(t, err, ErrEmptyFoodName)
}

func TestResetHistory(t *testing.T) {
	f := newFixture(t, "Apple")
	leo, _ := f.svc.AddChild(f.ctx, "Leo", "boy", "2023-06-15")
	for _, id := range []string{f.child.ID, leo.ID} {
		if _, err := f.svc.RecordFeeding(f.ctx, id, "Apple"); err != nil {
			t.Fatalf("Failed to record feeding: %v", err)
		}
	}

	t.Run("OneChild", func(t *testing.T) {
		if err := f.svc.ResetHistory(f.ctx, f.child.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		mine, _ := f.svc.History(f.ctx, f.child.ID)
		other, _ := f.svc.History(f.ctx, leo.ID)
		if len(mine) != 0 {
			t.Errorf("Expected an empty history, got %v", mine)
		}
		if len(other) != 1 {
			t.Errorf("Expected the other child's history to be kept, got %v", other)
		}
	})

	t.Run("All", func(t *testing.T) {
		if err := f.svc.ResetAllHistory(f.ctx); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if st := f.state(t); len(st.FeedingHistory) != 0 {
			t.Errorf("Expected no history at all, got %v", st.FeedingHistory)
		}
	})
}
