package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"discipline/internal/core"
)

// historyDateLayout mirrors a medium date style, e.g. "Aug 29, 2025".
const historyDateLayout = "Jan 2, 2006"

const (
	msgOnFire    = "🔥 Keep it up! You're on fire!"
	msgKeepGoing = "Keep logging daily to build your streak!"
)

// RecordView is the rendered form of a record.
type RecordView struct {
	ID          string  `json:"id" yaml:"id"`
	Day         string  `json:"day" yaml:"day"`
	Date        string  `json:"date" yaml:"date"`
	Nutrition   float64 `json:"nutrition" yaml:"nutrition"`
	Sleep       float64 `json:"sleep" yaml:"sleep"`
	Physical    float64 `json:"physical" yaml:"physical"`
	Education   float64 `json:"education" yaml:"education"`
	Financial   float64 `json:"financial" yaml:"financial"`
	TotalPoints float64 `json:"total_points" yaml:"total_points"`
}

func newRecordView(r core.Record, loc *time.Location) RecordView {
	return RecordView{
		ID:          r.ID,
		Day:         r.Day(loc).String(),
		Date:        r.Date.In(loc).Format(time.RFC3339),
		Nutrition:   r.Nutrition,
		Sleep:       r.Sleep,
		Physical:    r.Physical,
		Education:   r.Education,
		Financial:   r.Financial,
		TotalPoints: r.TotalPoints(),
	}
}

// LogResult is the output of the log command.
type LogResult struct {
	Record RecordView `json:"record" yaml:"record"`
}

func (r LogResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Logged %s: %s pts\n", r.Record.Day, formatPoints(r.Record.TotalPoints))
}

// StatusResult is the output of the status command.
type StatusResult struct {
	Day    string `json:"day" yaml:"day"`
	Logged bool   `json:"logged" yaml:"logged"`
}

func (r StatusResult) RenderText(w io.Writer) {
	if r.Logged {
		fmt.Fprintf(w, "%s: already logged\n", r.Day)
		return
	}
	fmt.Fprintf(w, "%s: not logged yet\n", r.Day)
}

// CategoryView holds per-category point sums.
type CategoryView struct {
	Nutrition float64 `json:"nutrition" yaml:"nutrition"`
	Sleep     float64 `json:"sleep" yaml:"sleep"`
	Physical  float64 `json:"physical" yaml:"physical"`
	Education float64 `json:"education" yaml:"education"`
	Financial float64 `json:"financial" yaml:"financial"`
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	Records       int          `json:"records" yaml:"records"`
	TotalPoints   float64      `json:"total_points" yaml:"total_points"`
	AveragePoints float64      `json:"average_points" yaml:"average_points"`
	CurrentStreak int          `json:"current_streak" yaml:"current_streak"`
	Categories    CategoryView `json:"categories" yaml:"categories"`
	Message       string       `json:"message" yaml:"message"`
}

func newStatsResult(s core.Summary) StatsResult {
	msg := msgKeepGoing
	if s.OnFire() {
		msg = msgOnFire
	}
	return StatsResult{
		Records:       s.Count,
		TotalPoints:   s.Total,
		AveragePoints: s.Average,
		CurrentStreak: s.Streak,
		Categories: CategoryView{
			Nutrition: s.ByCategory.Nutrition,
			Sleep:     s.ByCategory.Sleep,
			Physical:  s.ByCategory.Physical,
			Education: s.ByCategory.Education,
			Financial: s.ByCategory.Financial,
		},
		Message: msg,
	}
}

func (r StatsResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Total Points:    %s\n", formatPoints(r.TotalPoints))
	fmt.Fprintf(w, "Average Points:  %.1f\n", r.AveragePoints)
	fmt.Fprintf(w, "Current Streak:  %d days\n", r.CurrentStreak)
	fmt.Fprintf(w, "Records:         %d\n", r.Records)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Nutrition      %s\n", formatPoints(r.Categories.Nutrition))
	fmt.Fprintf(w, "  Sleep          %s\n", formatPoints(r.Categories.Sleep))
	fmt.Fprintf(w, "  Physical       %s\n", formatPoints(r.Categories.Physical))
	fmt.Fprintf(w, "  Education      %s\n", formatPoints(r.Categories.Education))
	fmt.Fprintf(w, "  Financial      %s\n", formatPoints(r.Categories.Financial))
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Message)
}

// HistoryResult is the output of the history command, newest first.
type HistoryResult struct {
	Records []RecordView `json:"records" yaml:"records"`
}

func (r HistoryResult) RenderText(w io.Writer) {
	if len(r.Records) == 0 {
		fmt.Fprintln(w, "No records yet")
		return
	}
	for _, rec := range r.Records {
		label := rec.Day
		if t, err := time.Parse(time.DateOnly, rec.Day); err == nil {
			label = t.Format(historyDateLayout)
		}
		fmt.Fprintf(w, "%-14s %s pts\n", label, formatPoints(rec.TotalPoints))
	}
}

// ResetResult is the output of the reset command.
type ResetResult struct {
	Removed int `json:"removed" yaml:"removed"`
}

func (r ResetResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Removed %d records\n", r.Removed)
}

// formatPoints drops a trailing ".0" so whole scores read as integers.
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
