package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	cases := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want Date
	}{
		{"utc midday", time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC), time.UTC, NewDate(2025, 8, 29)},
		{"late utc is next day in rome", time.Date(2025, 8, 29, 23, 30, 0, 0, time.UTC), rome, NewDate(2025, 8, 30)},
		{"early rome is previous day in utc", time.Date(2025, 8, 30, 0, 30, 0, 0, rome), time.UTC, NewDate(2025, 8, 29)},
	}
	for _, tc := range cases {
		got := DayOf(tc.t, tc.loc)
		if !got.Same(tc.want) {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDatePrevCrossesMonthAndYear(t *testing.T) {
	cases := []struct {
		in, want Date
	}{
		{NewDate(2025, 3, 1), NewDate(2025, 2, 28)},
		{NewDate(2024, 3, 1), NewDate(2024, 2, 29)},
		{NewDate(2025, 1, 1), NewDate(2024, 12, 31)},
	}
	for i, tc := range cases {
		if got := tc.in.Prev(); !got.Same(tc.want) {
			t.Fatalf("case %d: got %s, want %s", i, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-29")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2025-08-29" {
		t.Fatalf("unexpected date %s", d)
	}
	if _, err := ParseDate("29/08/2025"); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}

func TestDateInKeepsCalendarDay(t *testing.T) {
	d := NewDate(2025, 3, 30)
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	if got := DayOf(d.In(rome), rome); !got.Same(d) {
		t.Fatalf("got %s, want %s", got, d)
	}
}

func TestRecordTotalPoints(t *testing.T) {
	r := NewRecord(time.Now(), Scores{Nutrition: 18, Sleep: 15, Physical: 10, Education: 8, Financial: 5})
	if r.TotalPoints() != 56 {
		t.Fatalf("expected 56, got %v", r.TotalPoints())
	}
	if r.ID == "" {
		t.Fatalf("expected generated id")
	}
	other := NewRecord(r.Date, r.Scores)
	if other.ID == r.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestRecordValidate(t *testing.T) {
	good := []Record{
		NewRecord(time.Now(), Scores{}),
		NewRecord(time.Now(), Scores{Nutrition: -3, Sleep: 250}), // out of range is accepted
	}
	for i, r := range good {
		if err := r.Validate(); err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
	}

	if err := (Record{Scores: Scores{}}).Validate(); !errors.Is(err, ErrZeroDate) {
		t.Fatalf("expected ErrZeroDate, got %v", err)
	}
	bads := []Scores{
		{Nutrition: math.NaN()},
		{Financial: math.Inf(1)},
		{Sleep: math.Inf(-1)},
	}
	for i, s := range bads {
		if err := NewRecord(time.Now(), s).Validate(); !errors.Is(err, ErrNonFiniteScore) {
			t.Fatalf("case %d expected ErrNonFiniteScore, got %v", i, err)
		}
	}
}
