package core

import (
	"context"
	"time"
)

// DelayFor returns the pause that follows the count-th completed check.
// Every CooldownEvery-th check gets the longer cool-down.
func DelayFor(count int) time.Duration {
	if count > 0 && count%CooldownEvery == 0 {
		return CooldownDelay
	}
	return BaseDelay
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// EstimateRemaining extrapolates linearly from the average time per name.
func EstimateRemaining(elapsed time.Duration, processed, total int) time.Duration {
	if processed <= 0 || total <= processed {
		return 0
	}
	return time.Duration(float64(elapsed) / float64(processed) * float64(total-processed))
}
