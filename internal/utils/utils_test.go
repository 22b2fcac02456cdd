package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTimer struct {
	requested time.Duration
	stopped   bool
	fire      chan time.Time
}

func installFakeTimer(t *testing.T, fires bool) *fakeTimer {
	t.Helper()

	original := newTimer
	t.Cleanup(func() { newTimer = original })

	ft := &fakeTimer{fire: make(chan time.Time, 1)}
	newTimer = func(d time.Duration) (<-chan time.Time, func() bool) {
		ft.requested = d
		if fires {
			ft.fire <- time.Now()
		}
		return ft.fire, func() bool {
			ft.stopped = true
			return !fires
		}
	}
	return ft
}

func TestWaitFor(t *testing.T) {
	ft := installFakeTimer(t, true)

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft.requested != 0 {
		t.Fatalf("expected no timer for zero duration, got %s", ft.requested)
	}

	if err := WaitFor(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft.requested != time.Second {
		t.Fatalf("expected timer of 1s, got %s", ft.requested)
	}
	if !ft.stopped {
		t.Fatalf("expected timer to be stopped")
	}
}

func TestWaitForCancelled(t *testing.T) {
	ft := installFakeTimer(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitFor(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ft.requested != time.Hour {
		t.Fatalf("expected timer of 1h, got %s", ft.requested)
	}
	if !ft.stopped {
		t.Fatalf("expected pending timer to be stopped on cancel")
	}
}

func TestWaitForRealTimer(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := WaitFor(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("returned after %s, expected at least 10ms", elapsed)
	}
}
