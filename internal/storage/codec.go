package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"discipline/internal/core"
)

// logEntry is the persisted layout of one record. Total points are never
// stored; they are derived from the scores on read.
type logEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Nutrition float64   `json:"nutrition"`
	Sleep     float64   `json:"sleep"`
	Physical  float64   `json:"physical"`
	Education float64   `json:"education"`
	Financial float64   `json:"financial"`
}

// Encode serializes records as a JSON array.
func Encode(records []core.Record) ([]byte, error) {
	entries := make([]logEntry, len(records))
	for i, r := range records {
		entries[i] = logEntry{
			ID:        r.ID,
			Date:      r.Date,
			Nutrition: r.Nutrition,
			Sleep:     r.Sleep,
			Physical:  r.Physical,
			Education: r.Education,
			Financial: r.Financial,
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode daily logs: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array produced by Encode. Entries without an id get a
// fresh one.
func Decode(data []byte) ([]core.Record, error) {
	var entries []logEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode daily logs: %w", err)
	}

	records := make([]core.Record, 0, len(entries))
	for i, e := range entries {
		if e.Date.IsZero() {
			return nil, fmt.Errorf("decode daily logs: entry %d has no date", i)
		}
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, core.Record{
			ID:   id,
			Date: e.Date,
			Scores: core.Scores{
				Nutrition: e.Nutrition,
				Sleep:     e.Sleep,
				Physical:  e.Physical,
				Education: e.Education,
				Financial: e.Financial,
			},
		})
	}
	return records, nil
}
