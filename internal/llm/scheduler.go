package llm

import (
	"context"
	"time"

	"github.com/ziadkadry99/poe2genie/internal/clock"
)

// Scheduler serialises calls and keeps a minimum gap between the end of one
// call and the start of the next. Callers that arrive early wait; they are
// never rejected.
type Scheduler struct {
	clock    clock.Clock
	interval time.Duration
	slot     chan struct{}
	last     time.Time // end of the previous call; guarded by slot
}

// NewScheduler returns a scheduler enforcing interval between calls.
func NewScheduler(c clock.Clock, interval time.Duration) *Scheduler {
	if c == nil {
		c = clock.New()
	}
	return &Scheduler{
		clock:    c,
		interval: interval,
		slot:     make(chan struct{}, 1),
	}
}

// Interval returns the configured minimum spacing.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Do runs fn once the spacing since the previous call has elapsed. Only one
// fn runs at a time. A cancelled ctx aborts the wait.
func (s *Scheduler) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.slot }()

	if !s.last.IsZero() {
		if wait := s.last.Add(s.interval).Sub(s.clock.Now()); wait > 0 {
			select {
			case <-s.clock.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	err := fn(ctx)
	s.last = s.clock.Now()
	return err
}

// SpacedProvider wraps a Provider so every completion goes through a
// Scheduler.
type SpacedProvider struct {
	provider  Provider
	scheduler *Scheduler
}

// NewSpacedProvider wraps the given provider with the scheduler.
func NewSpacedProvider(provider Provider, scheduler *Scheduler) Provider {
	return &SpacedProvider{provider: provider, scheduler: scheduler}
}

func (p *SpacedProvider) Name() string {
	return p.provider.Name()
}

func (p *SpacedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	var resp *CompletionResponse
	err := p.scheduler.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = p.provider.Complete(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
