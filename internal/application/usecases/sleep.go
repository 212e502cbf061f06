package usecases

import (
	"context"
	"time"
)

// SleepFunc blocks for d. Settle and pacing waits are fixed-length; they only
// end early when ctx is cancelled.
type SleepFunc func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
