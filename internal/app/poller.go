package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	maxBackoff         = 30 * time.Second
	defaultPullTimeout = 10 * time.Second
)

// Puller merges the remote store into local state.
type Puller interface {
	Pull(ctx context.Context) error
}

// StartPoller pulls at a fixed cadence until ctx is cancelled, backing off
// after consecutive failures. It returns immediately; the returned channel is
// closed once the goroutine has exited.
func StartPoller(ctx context.Context, p Puller, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("poller")
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := pullOnce(ctx, p); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				wait := calculateBackoff(failures, interval)
				logger.Warn("remote pull failed", zap.Error(err), zap.Int("failures", failures), zap.Duration("retry_in", wait))
				timer.Reset(wait)
				continue
			}
			if failures > 0 {
				logger.Info("remote pull recovered", zap.Int("after_failures", failures))
			}
			failures = 0
			timer.Reset(interval)
		}
	}()
	return done
}

func pullOnce(ctx context.Context, p Puller) error {
	ctx, cancel := context.WithTimeout(ctx, defaultPullTimeout)
	defer cancel()
	return p.Pull(ctx)
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
// A base already above the cap is returned unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if base >= maxBackoff {
		return base
	}
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
