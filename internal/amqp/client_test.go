package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"discipline/internal/core"
	"discipline/internal/logstore"
)

type published struct {
	exchange, key string
	msg           amqp091.Publishing
	hasDeadline   bool
}

type fakeChannel struct {
	declared   []string
	published  []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	_, ok := ctx.Deadline()
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg, hasDeadline: ok})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var fixedNow = time.Date(2025, 8, 29, 20, 0, 0, 0, time.UTC)

func TestNewLogEventMessage(t *testing.T) {
	r := core.NewRecord(time.Date(2025, 8, 29, 23, 30, 0, 0, time.UTC), core.Scores{Nutrition: 18, Sleep: 15, Physical: 10, Education: 8, Financial: 5})

	added := NewLogEventMessage(logstore.Event{Type: logstore.EventAdded, Record: r, Count: 3}, time.UTC, fixedNow)
	if added.Type != "added" || added.RecordID != r.ID || added.Day != "2025-08-29" || added.TotalPoints != 56 || added.Count != 3 {
		t.Fatalf("unexpected added message: %+v", added)
	}

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	if got := NewLogEventMessage(logstore.Event{Type: logstore.EventAdded, Record: r}, plus2, fixedNow).Day; got != "2025-08-30" {
		t.Fatalf("expected day in configured zone, got %s", got)
	}

	reset := NewLogEventMessage(logstore.Event{Type: logstore.EventReset}, time.UTC, fixedNow)
	if reset.Type != "reset" || reset.RecordID != "" || reset.Day != "" || reset.Count != 0 {
		t.Fatalf("unexpected reset message: %+v", reset)
	}
}

func TestLogEventMessageJSON(t *testing.T) {
	msg := &LogEventMessage{Type: "reset", Timestamp: fixedNow}
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"reset","count":0,"timestamp":"2025-08-29T20:00:00Z"}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var back LogEventMessage
	if err := json.Unmarshal(data, &back); err != nil || back.Type != "reset" || !back.Timestamp.Equal(fixedNow) {
		t.Fatalf("unexpected decode: %+v err=%v", back, err)
	}
}

func TestClientSetupAndPublish(t *testing.T) {
	ch := &fakeChannel{}
	c := newClient(ch, "discipline", "daily_logs", 0)
	if err := c.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if len(ch.declared) != 1 || ch.declared[0] != "discipline:topic" {
		t.Fatalf("unexpected declarations: %v", ch.declared)
	}

	if err := c.Publish(context.Background(), &LogEventMessage{Type: "added", Count: 1, Timestamp: fixedNow}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(ch.published))
	}
	p := ch.published[0]
	if p.exchange != "discipline" || p.key != "daily_logs.added" {
		t.Fatalf("unexpected target %s/%s", p.exchange, p.key)
	}
	if p.msg.ContentType != "application/json" || p.msg.DeliveryMode != amqp091.Persistent || p.msg.Type != "added" {
		t.Fatalf("unexpected publishing: %+v", p.msg)
	}
	if !p.hasDeadline {
		t.Fatalf("publish should run with a timeout")
	}

	if err := c.Close(); err != nil || !ch.closed {
		t.Fatalf("expected channel closed, err=%v", err)
	}
}

func TestPublishWithoutConnection(t *testing.T) {
	var c *Client
	if err := c.Publish(context.Background(), &LogEventMessage{Type: "reset"}); err == nil {
		t.Fatalf("expected error from nil client")
	}
}

func TestSubscriberPublishesStoreEvents(t *testing.T) {
	ch := &fakeChannel{}
	c := newClient(ch, "discipline", "daily_logs", time.Second)
	c.now = func() time.Time { return fixedNow }

	notify := c.Subscriber(context.Background(), time.UTC, nil)
	notify(logstore.Event{Type: logstore.EventAdded, Record: core.NewRecord(fixedNow, core.Scores{Sleep: 4}), Count: 1})
	notify(logstore.Event{Type: logstore.EventReset})

	if len(ch.published) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(ch.published))
	}
	if ch.published[0].key != "daily_logs.added" || ch.published[1].key != "daily_logs.reset" {
		t.Fatalf("unexpected keys: %s, %s", ch.published[0].key, ch.published[1].key)
	}

	var msg LogEventMessage
	err := json.Unmarshal(ch.published[0].msg.Body, &msg)
	if err != nil || msg.TotalPoints != 4 || msg.Day != "2025-08-29" {
		t.Fatalf("unexpected body: %+v err=%v", msg, err)
	}
}

func TestSubscriberSwallowsPublishErrors(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	c := newClient(ch, "discipline", "daily_logs", time.Second)

	// Must not panic or propagate.
	c.Subscriber(context.Background(), time.UTC, nil)(logstore.Event{Type: logstore.EventReset})
	if len(ch.published) != 0 {
		t.Fatalf("expected no successful publishes")
	}
}
