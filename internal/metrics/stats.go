package metrics

import (
	"sort"
	"time"

	"babymenu/internal/calendar"
	"babymenu/internal/planner"
)

// DailyCount is the number of feedings recorded on one day.
type DailyCount struct {
	Date  string
	Count int
}

// FoodTotal is how many times a food was fed overall.
type FoodTotal struct {
	Food  string
	Count int
}

// Summary aggregates a child's feeding history.
type Summary struct {
	TotalFeedings int
	DaysWithFeeds int
	Daily         []DailyCount
	Foods         []FoodTotal
}

// DailyCounts returns one entry per day for the last days days ending with
// today, oldest first. Days without a record count zero.
func DailyCounts(history map[string]planner.FeedingDay, today time.Time, days int) []DailyCount {
	if days <= 0 {
		return nil
	}
	today = calendar.Day(today)
	out := make([]DailyCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := calendar.FormatISO(today.AddDate(0, 0, -i))
		out = append(out, DailyCount{Date: key, Count: history[key].Count})
	}
	return out
}

// FoodTotals counts every fed item across the history, most fed first and
// then by name.
func FoodTotals(history map[string]planner.FeedingDay) []FoodTotal {
	counts := make(map[string]int)
	for _, day := range history {
		for _, item := range day.Items {
			counts[item]++
		}
	}

	out := make([]FoodTotal, 0, len(counts))
	for food, n := range counts {
		out = append(out, FoodTotal{Food: food, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Food < out[j].Food
	})
	return out
}

// Summarize builds the totals over the whole history plus the daily view of
// the last days days.
func Summarize(history map[string]planner.FeedingDay, today time.Time, days int) Summary {
	s := Summary{
		Daily: DailyCounts(history, today, days),
		Foods: FoodTotals(history),
	}
	for _, day := range history {
		s.TotalFeedings += day.Count
		if day.Count > 0 {
			s.DaysWithFeeds++
		}
	}
	return s
}
