package backend

import (
	"context"
	"fmt"

	applog "discipline/internal/log"
	"discipline/internal/storage"
	"discipline/internal/storage/file"
	"discipline/internal/storage/memory"
	"discipline/internal/storage/sqlite"
)

// Opened is a persistence adapter ready for the log store and the func that
// releases its slot.
type Opened struct {
	Adapter *storage.Adapter
	Close   func() error
}

// Opener turns Settings into an open adapter.
type Opener interface {
	Open(ctx context.Context, s Settings) (*Opened, error)
}

// SlotOpener opens the built-in slot kinds.
type SlotOpener struct {
	logger *applog.Logger
}

// NewOpener returns a SlotOpener. A nil logger discards output.
func NewOpener(logger *applog.Logger) *SlotOpener {
	if logger == nil {
		logger = applog.Nop()
	}
	return &SlotOpener{logger: logger.WithComponent(applog.ComponentBackend)}
}

// Open validates s and opens the slot it names.
func (o *SlotOpener) Open(ctx context.Context, s Settings) (*Opened, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	slot, err := o.openSlot(s)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", s.Kind, err)
	}

	o.logger.DebugContext(ctx, "Slot opened",
		applog.FieldBackend, s.Kind.String(),
		applog.FieldOperation, applog.OpStartup)

	adapter := storage.NewAdapter(slot, o.logger)
	return &Opened{Adapter: adapter, Close: adapter.Close}, nil
}

func (o *SlotOpener) openSlot(s Settings) (storage.Slot, error) {
	switch s.Kind {
	case SQLite:
		return sqlite.Open(s.DBPath)
	case File:
		return file.New(s.Dir)
	default:
		return memory.New(), nil
	}
}
