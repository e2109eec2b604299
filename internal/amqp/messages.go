package amqp

import (
	"encoding/json"
	"time"

	"discipline/internal/logstore"
)

// LogEventMessage announces a change to the daily log collection. It carries
// the record's day and totals only; consumers never receive full scores.
type LogEventMessage struct {
	Type        string    `json:"type"`
	RecordID    string    `json:"record_id,omitempty"`
	Day         string    `json:"day,omitempty"`
	TotalPoints float64   `json:"total_points,omitempty"`
	Count       int       `json:"count"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLogEventMessage converts a store event into a message.
func NewLogEventMessage(e logstore.Event, loc *time.Location, now time.Time) *LogEventMessage {
	msg := &LogEventMessage{
		Type:      string(e.Type),
		Count:     e.Count,
		Timestamp: now,
	}
	if e.Type == logstore.EventAdded {
		msg.RecordID = e.Record.ID
		msg.Day = e.Record.Day(loc).String()
		msg.TotalPoints = e.Record.TotalPoints()
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *LogEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
