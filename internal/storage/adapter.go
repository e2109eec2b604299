package storage

import (
	"context"
	"errors"
	"fmt"

	"discipline/internal/core"
	applog "discipline/internal/log"
)

// Adapter stores the whole record collection under LogsKey.
type Adapter struct {
	slot   Slot
	key    string
	logger *applog.Logger
}

// NewAdapter wraps slot. A nil logger discards output.
func NewAdapter(slot Slot, logger *applog.Logger) *Adapter {
	if logger == nil {
		logger = applog.Nop()
	}
	return &Adapter{
		slot:   slot,
		key:    LogsKey,
		logger: logger.WithComponent(applog.ComponentStorage),
	}
}

// Save replaces the stored collection with records in a single write.
func (a *Adapter) Save(ctx context.Context, records []core.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := a.slot.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("write %s: %w", a.key, err)
	}

	a.logger.DebugContext(ctx, "Daily logs saved",
		applog.FieldOperation, applog.OpSave,
		applog.FieldKey, a.key,
		applog.FieldCount, len(records),
		applog.FieldBytes, len(data))
	return nil
}

// Load returns the stored collection. It never fails: an empty slot, a read
// error or unparseable content all yield an empty collection.
func (a *Adapter) Load(ctx context.Context) []core.Record {
	data, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		a.logger.DebugContext(ctx, "No stored daily logs", applog.FieldOperation, applog.OpLoad)
		return []core.Record{}
	}
	if err != nil {
		a.logger.LogError(ctx, "Failed to read daily logs, starting empty", err, applog.OpLoad,
			applog.NewFields())
		return []core.Record{}
	}

	records, err := Decode(data)
	if err != nil {
		a.logger.LogError(ctx, "Stored daily logs are unreadable, starting empty", err, applog.OpLoad,
			applog.NewFields())
		return []core.Record{}
	}

	a.logger.DebugContext(ctx, "Daily logs loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldCount, len(records))
	return records
}

// Clear removes the stored collection.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.slot.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("delete %s: %w", a.key, err)
	}
	a.logger.DebugContext(ctx, "Daily logs cleared", applog.FieldOperation, applog.OpClear)
	return nil
}

// Close releases the slot's resources, if any.
func (a *Adapter) Close() error {
	if c, ok := a.slot.(Closer); ok {
		return c.Close()
	}
	return nil
}
