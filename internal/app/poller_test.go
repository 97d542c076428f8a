package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongIntervalUnchanged(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

type countingPuller struct {
	calls atomic.Int32
	err   error
}

func (p *countingPuller) Pull(ctx context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestStartPoller_PullsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &countingPuller{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartPoller(ctx, p, 5*time.Millisecond, nil)

	deadline := time.After(2 * time.Second)
	for p.calls.Load() < 3 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("poller made %d pulls, want >= 3", p.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop after cancel")
	}
}

func TestStartPoller_KeepsGoingAfterFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &countingPuller{err: errors.New("offline")}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartPoller(ctx, p, time.Millisecond, nil)

	deadline := time.After(2 * time.Second)
	for p.calls.Load() < 2 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("poller stopped retrying after failure")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestStartPoller_ZeroIntervalDisabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &countingPuller{}
	done := StartPoller(context.Background(), p, 0, nil)
	select {
	case <-done:
	default:
		t.Fatalf("disabled poller should report done immediately")
	}
	if p.calls.Load() != 0 {
		t.Fatalf("disabled poller pulled %d times", p.calls.Load())
	}
}
