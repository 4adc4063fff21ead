package rotation

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	t.Run("EpochIsDayOne", func(t *testing.T) {
		foods := []string{"Apple", "Banana", "Pear"}
		week, dayInWeek := Offset(Epoch)
		if week != 0 || dayInWeek != 1 {
			t.Fatalf("Expected week 0 day 1 for the epoch, got week %d day %d", week, dayInWeek)
		}
		if got := Resolve(day(2024, time.January, 1), foods); got != "Banana" {
			t.Errorf("Expected 'Banana' on 2024-01-01, got '%s'", got)
		}
	})

	t.Run("SingleFood", func(t *testing.T) {
		foods := []string{"Apple"}
		start := day(2023, time.June, 1)
		for i := 0; i < 400; i++ {
			if got := Resolve(start.AddDate(0, 0, i), foods); got != "Apple" {
				t.Fatalf("Expected 'Apple' for every date, got '%s' at offset %d", got, i)
			}
		}
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		if got := Resolve(Epoch, nil); got != "" {
			t.Errorf("Expected empty result for an empty catalog, got '%s'", got)
		}
	})
}

func TestIndexWeekSequence(t *testing.T) {
	for n := 2; n <= 9; n++ {
		// The epoch week opens on Sunday 2023-12-31.
		start := day(2023, time.December, 31)
		for i := 0; i < 7; i++ {
			if got, want := Index(start.AddDate(0, 0, i), n), i%n; got != want {
				t.Errorf("n=%d: expected index %d on day %d of the epoch week, got %d", n, want, i, got)
			}
		}

		// Later weeks continue the same cycle.
		for w := 1; w < 5; w++ {
			weekStart := start.AddDate(0, 0, 7*w)
			for i := 0; i < 7; i++ {
				if got, want := Index(weekStart.AddDate(0, 0, i), n), (w*7+i)%n; got != want {
					t.Errorf("n=%d week=%d: expected index %d on day %d, got %d", n, w, want, i, got)
				}
			}
		}
	}
}

func TestIndexBeforeEpoch(t *testing.T) {
	week, dayInWeek := Offset(day(2023, time.December, 30))
	if week != -1 || dayInWeek != 6 {
		t.Errorf("Expected week -1 day 6 for the Saturday before the epoch week, got week %d day %d", week, dayInWeek)
	}

	start := day(2022, time.February, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		for n := 2; n <= 5; n++ {
			idx := Index(d, n)
			if idx < 0 || idx >= n {
				t.Fatalf("Index(%s, %d) = %d is out of range", d.Format("2006-01-02"), n, idx)
			}
			next := Index(d.AddDate(0, 0, 1), n)
			if next != (idx+1)%n {
				t.Fatalf("Expected consecutive days to advance by one: %d then %d (n=%d)", idx, next, n)
			}
		}
	}
}

func TestResolveIgnoresTimeOfDay(t *testing.T) {
	foods := []string{"Apple", "Banana", "Pear"}
	morning := time.Date(2024, time.May, 5, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, time.May, 5, 23, 59, 0, 0, time.UTC)
	if Resolve(morning, foods) != Resolve(night, foods) {
		t.Error("Expected the same food for every hour of one day")
	}
}

func TestIndexFarDates(t *testing.T) {
	for _, year := range []int{1600, 1700, 2300, 2400, 2500, 9999} {
		start := day(year, time.March, 1)
		for i := 0; i < 14; i++ {
			d := start.AddDate(0, 0, i)
			idx := Index(d, 3)
			next := Index(d.AddDate(0, 0, 1), 3)
			if next != (idx+1)%3 {
				t.Fatalf("year %d: expected consecutive days to advance by one, got %d then %d on %s", year, idx, next, d.Format("2006-01-02"))
			}
		}
	}
}
