package core

import (
	"sort"
	"time"
)

// StreakOnFire is the streak length at which the dashboard celebrates.
const StreakOnFire = 5

// Summary is the aggregate view over a record collection.
type Summary struct {
	Count      int
	Total      float64
	Average    float64
	Streak     int
	ByCategory Scores
}

// OnFire reports whether the streak reached StreakOnFire days.
func (s Summary) OnFire() bool {
	return s.Streak >= StreakOnFire
}

// Summarize computes every metric over records in one pass of the public functions.
func Summarize(records []Record, loc *time.Location) Summary {
	return Summary{
		Count:      len(records),
		Total:      TotalPoints(records),
		Average:    AveragePoints(records),
		Streak:     CurrentStreak(records, loc),
		ByCategory: CategoryTotals(records),
	}
}

// TotalPoints sums the total points of all records.
func TotalPoints(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.TotalPoints()
	}
	return total
}

// AveragePoints returns the mean total per record, or 0 for no records.
func AveragePoints(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	return TotalPoints(records) / float64(len(records))
}

// CategoryTotals sums each category independently.
func CategoryTotals(records []Record) Scores {
	var s Scores
	for _, r := range records {
		s.Nutrition += r.Nutrition
		s.Sleep += r.Sleep
		s.Physical += r.Physical
		s.Education += r.Education
		s.Financial += r.Financial
	}
	return s
}

// CurrentStreak counts consecutive calendar days ending at the most recent
// record's day. It does not require that day to be today, and scores do not
// matter: only the presence of a record counts.
func CurrentStreak(records []Record, loc *time.Location) int {
	if len(records) == 0 {
		return 0
	}

	sorted := SortByDateDesc(records)
	anchor := sorted[0].Day(loc)
	streak := 1
	for _, r := range sorted[1:] {
		day := r.Day(loc)
		if day.Same(anchor) {
			// Only reachable if the collection broke the one-per-day invariant.
			continue
		}
		if !day.Same(anchor.Prev()) {
			break
		}
		streak++
		anchor = day
	}
	return streak
}

// SortByDateDesc returns a copy of records ordered newest first.
// Input order is preserved among records with the same instant.
func SortByDateDesc(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
