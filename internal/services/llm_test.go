package services

import (
	"context"
	"testing"
	"time"
)

func TestRateGate_LimitsConcurrency(t *testing.T) {
	g := newRateGate(1)
	ctx := context.Background()

	if err := g.acquire(ctx); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	ctx2, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := g.acquire(ctx2); err == nil {
		t.Fatalf("expected second acquire to wait until the context expires")
	}

	g.release()
	if err := g.acquire(ctx); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestNewRateGate_MinimumOneSlot(t *testing.T) {
	g := newRateGate(0)
	if cap(g.slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", cap(g.slots))
	}
}
