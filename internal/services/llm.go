package services

import (
	"context"
	"fmt"
	"time"
)

// Generator produces one markdown document from a system and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Provider() string
	Model() string
}

const (
	rateSlotWait      = 5 * time.Minute
	generationTimeout = 3 * time.Minute
)

// rateGate caps concurrent provider calls. Slots are handed out as tokens.
type rateGate struct {
	slots chan struct{}
}

func newRateGate(concurrent int) *rateGate {
	if concurrent < 1 {
		concurrent = 1
	}
	g := &rateGate{slots: make(chan struct{}, concurrent)}
	for i := 0; i < concurrent; i++ {
		g.slots <- struct{}{}
	}
	return g
}

// acquire blocks until a slot is available
func (g *rateGate) acquire(ctx context.Context) error {
	select {
	case <-g.slots:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rateSlotWait):
		return fmt.Errorf("timeout waiting for LLM rate slot")
	}
}

func (g *rateGate) release() {
	g.slots <- struct{}{}
}
