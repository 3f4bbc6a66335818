package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreFirstRequest(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "accrual-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if exists {
		t.Fatal("expected first request to claim the key")
	}
	if cached != nil {
		t.Fatalf("expected no cached response, got %s", cached)
	}
}

func TestIdempotencyStoreReplay(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte(`{"updatedCount":3,"status":"success"}`)

	if _, _, err := store.CheckAndSet(ctx, "accrual-1", nil, time.Hour); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if err := store.Update(ctx, "accrual-1", response, time.Hour); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "accrual-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("replay CheckAndSet failed: %v", err)
	}
	if !exists {
		t.Fatal("expected replay to find existing key")
	}
	if !bytes.Equal(cached, response) {
		t.Fatalf("expected cached response %s, got %s", response, cached)
	}
}

func TestIdempotencyStoreInFlightPlaceholder(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "accrual-1", nil, time.Hour); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "accrual-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("second CheckAndSet failed: %v", err)
	}
	if !exists {
		t.Fatal("expected in-flight key to be claimed")
	}
	if string(cached) != "processing" {
		t.Fatalf("expected processing placeholder, got %s", cached)
	}
}
