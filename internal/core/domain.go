package core

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type (
	// Date is a civil calendar day with no time-of-day or zone.
	Date struct {
		time.Time
	}

	// Scores holds the five category scores of one day.
	Scores struct {
		Nutrition float64
		Sleep     float64
		Physical  float64
		Education float64
		Financial float64
	}

	// Record is one day's submitted scores. It is never mutated once stored.
	Record struct {
		ID   string // List identity only, never used for uniqueness
		Date time.Time
		Scores
	}
)

var (
	ErrZeroDate       = errors.New("date cannot be zero")
	ErrNonFiniteScore = errors.New("score must be a finite number")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar day of t as seen in loc. A nil loc means local time.
func DayOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return NewDate(y, int(m), d)
}

// Prev returns the calendar day before d.
func (d Date) Prev() Date {
	return Date{Time: d.AddDate(0, 0, -1)}
}

// Same reports whether d and other are the same calendar day.
func (d Date) Same(other Date) bool {
	return d.Equal(other.Time)
}

// String formats the day as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// In returns the instant at noon of d in loc. Noon keeps the instant on the
// same calendar day across DST transitions.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
}

// Total returns the sum of all five categories.
func (s Scores) Total() float64 {
	return s.Nutrition + s.Sleep + s.Physical + s.Education + s.Financial
}

// Validate rejects values that cannot be persisted as JSON numbers.
// Range is not checked: out-of-range and negative scores are kept as given.
func (s Scores) Validate() error {
	for _, v := range []float64{s.Nutrition, s.Sleep, s.Physical, s.Education, s.Financial} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteScore
		}
	}
	return nil
}

// NewRecord builds a record for date with a fresh identifier.
func NewRecord(date time.Time, scores Scores) Record {
	return Record{
		ID:     uuid.NewString(),
		Date:   date,
		Scores: scores,
	}
}

// TotalPoints is always derived from the category scores.
func (r Record) TotalPoints() float64 {
	return r.Scores.Total()
}

// Day returns the uniqueness key of the record.
func (r Record) Day(loc *time.Location) Date {
	return DayOf(r.Date, loc)
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return ErrZeroDate
	}
	return r.Scores.Validate()
}
