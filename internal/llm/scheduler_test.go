package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ziadkadry99/poe2genie/internal/clock"
)

func TestSchedulerFirstCallDoesNotWait(t *testing.T) {
	fake := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewScheduler(fake, time.Second)

	if err := s.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(fake.Sleeps()) != 0 {
		t.Errorf("expected no sleep, got %v", fake.Sleeps())
	}
}

func TestSchedulerSpacesBackToBackCalls(t *testing.T) {
	fake := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewScheduler(fake, time.Second)

	var ends []time.Time
	for i := 0; i < 3; i++ {
		err := s.Do(context.Background(), func(context.Context) error {
			fake.Advance(200 * time.Millisecond) // call latency
			ends = append(ends, fake.Now())
			return nil
		})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	for i := 1; i < len(ends); i++ {
		if gap := ends[i].Sub(ends[i-1]); gap < time.Second {
			t.Errorf("calls %d and %d completed %v apart, want >= 1s", i-1, i, gap)
		}
	}
	// Spacing is measured from the end of the previous call.
	sleeps := fake.Sleeps()
	if len(sleeps) != 2 || sleeps[0] != time.Second || sleeps[1] != time.Second {
		t.Errorf("unexpected sleeps %v", sleeps)
	}
}

func TestSchedulerSkipsWaitWhenIntervalElapsed(t *testing.T) {
	fake := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewScheduler(fake, time.Second)
	noop := func(context.Context) error { return nil }

	s.Do(context.Background(), noop)
	fake.Advance(700 * time.Millisecond)
	s.Do(context.Background(), noop)
	fake.Advance(5 * time.Second)
	s.Do(context.Background(), noop)

	sleeps := fake.Sleeps()
	if len(sleeps) != 1 || sleeps[0] != 300*time.Millisecond {
		t.Errorf("expected a single 300ms wait, got %v", sleeps)
	}
}

func TestSchedulerPropagatesError(t *testing.T) {
	s := NewScheduler(clock.NewFake(time.Now()), time.Second)
	want := errors.New("boom")
	if err := s.Do(context.Background(), func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestSchedulerSerialisesConcurrentCallers(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)

	s := NewScheduler(clock.New(), 30*time.Millisecond)

	var mu sync.Mutex
	var starts, ends []time.Time
	running := 0

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				running++
				if running > 1 {
					t.Error("two calls ran at once")
				}
				starts = append(starts, time.Now())
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				running--
				ends = append(ends, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(ends[i-1]); gap < 30*time.Millisecond {
			t.Errorf("call %d started %v after previous ended, want >= 30ms", i, gap)
		}
	}
}

func TestSchedulerCancelledWhileWaiting(t *testing.T) {
	s := NewScheduler(clock.New(), time.Hour)
	if err := s.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	called := false
	err := s.Do(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if called {
		t.Error("fn must not run after cancellation")
	}
}

func TestSpacedProviderPassesThrough(t *testing.T) {
	mock := NewMockProvider("test")
	p := NewSpacedProvider(mock, NewScheduler(clock.NewFake(time.Now()), time.Second))

	resp, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("expected 'mock response', got %q", resp.Content)
	}
	if p.Name() != "test" {
		t.Errorf("expected name 'test', got %q", p.Name())
	}
}
