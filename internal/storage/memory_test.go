package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "routes_from_api/plan.json", []byte(`{"plan":{}}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := store.Get(ctx, "routes_from_api/plan.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"plan":{}}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestMemoryStore_CopyDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "logs/logs_temp.txt", []byte("entry\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Copy(ctx, "logs/logs_temp.txt", "logs/logs.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "logs/logs_temp.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "logs/logs_temp.txt"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected temp key to be gone, got %v", err)
	}
	body, err := store.Get(ctx, "logs/logs.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "entry\n" {
		t.Errorf("unexpected body: %s", body)
	}

	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("deleting an absent key must not error, got %v", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := store.Get(ctx, "k")
	body[0] = 'x'

	again, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored object was mutated through a returned slice")
	}
}
