// Package logstore owns the in-memory collection of daily records, enforces
// one record per calendar day, and keeps the persisted copy in step.
//
// A Store is created per session and handed to whatever presents it; there is
// no package-level instance. Mutations run synchronously: a failed write is
// logged and the in-memory state stays authoritative for the session.
package logstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"discipline/internal/core"
	applog "discipline/internal/log"
)

var (
	// ErrDuplicateDay rejects a record for a calendar day that already has one.
	ErrDuplicateDay       = errors.New("a record already exists for this day")
	ErrNotInitialized     = errors.New("log store not initialized")
	ErrAlreadyInitialized = errors.New("log store already initialized")
)

// Persistence is the durable side of the store.
type Persistence interface {
	Save(ctx context.Context, records []core.Record) error
	Load(ctx context.Context) []core.Record
	Clear(ctx context.Context) error
}

// Store is the single owner of the record collection.
type Store struct {
	persistence Persistence
	logger      *applog.Logger
	loc         *time.Location
	now         func() time.Time

	mu          sync.RWMutex
	ready       bool
	logs        []core.Record
	subscribers map[int]func(Event)
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the zone used to derive calendar days. Defaults to local time.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the source of "now", used for today's queries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an uninitialized store backed by p.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{
		persistence: p,
		logger:      applog.Nop(),
		loc:         time.Local,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentStore)
	return s
}

// Initialize loads the persisted collection. It must be called exactly once
// before the store is used.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return ErrAlreadyInitialized
	}

	loaded := s.persistence.Load(ctx)
	s.logs = s.dedupeDays(ctx, loaded)
	s.ready = true

	s.logger.InfoContext(ctx, "Log store ready",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldCount, len(s.logs))
	return nil
}

// dedupeDays keeps the first record of each calendar day.
func (s *Store) dedupeDays(ctx context.Context, records []core.Record) []core.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]core.Record, 0, len(records))
	for _, r := range records {
		day := r.Day(s.loc)
		if _, dup := seen[day.String()]; dup {
			s.logger.WarnContext(ctx, "Dropping stored record for an already recorded day",
				applog.FieldOperation, applog.OpLoad,
				applog.FieldRecordID, r.ID,
				applog.FieldDay, day.String())
			continue
		}
		seen[day.String()] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Ready reports whether Initialize has run.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Location returns the zone used for calendar days.
func (s *Store) Location() *time.Location {
	return s.loc
}

// HasRecordForDay reports whether a record exists on the calendar day of t.
func (s *Store) HasRecordForDay(t time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasDay(core.DayOf(t, s.loc))
}

// HasRecordForToday reports whether today already has a record.
func (s *Store) HasRecordForToday() bool {
	return s.HasRecordForDay(s.now())
}

func (s *Store) hasDay(day core.Date) bool {
	for _, r := range s.logs {
		if r.Day(s.loc).Same(day) {
			return true
		}
	}
	return false
}

// AddRecord appends r unless its calendar day is already recorded, in which
// case it returns ErrDuplicateDay and changes nothing. The collection is then
// saved; a save failure is logged and not returned.
func (s *Store) AddRecord(ctx context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	day := r.Day(s.loc)
	if s.hasDay(day) {
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "Rejected record for already recorded day",
			applog.FieldOperation, applog.OpAppend,
			applog.FieldDay, day.String())
		return fmt.Errorf("%s: %w", day, ErrDuplicateDay)
	}

	s.logs = append(s.logs, r)
	snapshot := s.snapshot()
	if err := s.persistence.Save(ctx, snapshot); err != nil {
		s.logger.LogError(ctx, "Failed to save daily logs, keeping in-memory state", err, applog.OpSave,
			applog.NewFields().WithCount(len(snapshot)))
	}
	subs := s.subscriberList()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Record added", applog.NewFields().
		WithOperation(applog.OpAppend).
		WithRecord(r.ID, day.String(), r.TotalPoints()).
		ToSlice()...)

	notify(subs, Event{Type: EventAdded, Record: r, Count: len(snapshot)})
	return nil
}

// Submit builds a record for date from scores and adds it.
func (s *Store) Submit(ctx context.Context, date time.Time, scores core.Scores) (core.Record, error) {
	r := core.NewRecord(date, scores)
	if err := s.AddRecord(ctx, r); err != nil {
		return core.Record{}, err
	}
	return r, nil
}

// ResetAll empties the collection and clears the persisted copy. It cannot be undone.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	removed := len(s.logs)
	s.logs = nil
	if err := s.persistence.Clear(ctx); err != nil {
		s.logger.LogError(ctx, "Failed to clear stored daily logs", err, applog.OpClear, applog.NewFields())
	}
	subs := s.subscriberList()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "All records reset",
		applog.FieldOperation, applog.OpReset,
		applog.FieldCount, removed)

	notify(subs, Event{Type: EventReset})
	return nil
}

// Logs returns a copy of the collection in insertion order.
func (s *Store) Logs() []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// History returns the collection newest first.
func (s *Store) History() []core.Record {
	return core.SortByDateDesc(s.Logs())
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

func (s *Store) snapshot() []core.Record {
	out := make([]core.Record, len(s.logs))
	copy(out, s.logs)
	return out
}

// TotalPoints sums all records.
func (s *Store) TotalPoints() float64 {
	return core.TotalPoints(s.Logs())
}

// AveragePoints is the mean total per record, 0 when empty.
func (s *Store) AveragePoints() float64 {
	return core.AveragePoints(s.Logs())
}

// CurrentStreak counts consecutive days back from the latest record.
func (s *Store) CurrentStreak() int {
	return core.CurrentStreak(s.Logs(), s.loc)
}

// Summary computes every dashboard metric from one snapshot.
func (s *Store) Summary() core.Summary {
	return core.Summarize(s.Logs(), s.loc)
}
