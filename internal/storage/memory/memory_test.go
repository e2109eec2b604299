package memory

import (
	"context"
	"errors"
	"testing"

	"discipline/internal/storage"
)

func TestSlotPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	value := []byte("one")
	if err := s.Put(ctx, "k", value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 'X' // must not leak into the slot

	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "one" {
		t.Fatalf("unexpected get: %q err=%v", got, err)
	}
	got[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "one" {
		t.Fatalf("stored value was aliased: %q", again)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
