package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryKVGetMissing(t *testing.T) {
	kv := NewMemoryKV()
	if _, err := kv.Get(context.Background(), "favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	value := []byte("abc")
	if err := kv.Set(ctx, "k", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'z'

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("expected stored copy to be unaffected, got %q", got)
	}
	got[1] = 'z'
	again, _ := kv.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("expected returned copy to be independent, got %q", again)
	}
}
