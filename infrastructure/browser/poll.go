package browser

import (
	"context"
	"errors"
	"time"
)

const pollInterval = 100 * time.Millisecond

var errPollTimeout = errors.New("timed out")

// poll - calls check until it reports done, ctx ends or timeout elapses.
// It returns the last observed state for failure messages. Errors from
// check are treated as "not yet" so transient lookups keep polling.
func poll(ctx context.Context, timeout time.Duration, check func() (bool, string, error)) (string, error) {
	deadline := time.Now().Add(budget(ctx, timeout))
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var actual string
	var lastErr error
	for {
		done, state, err := check()
		if err == nil && done {
			return state, nil
		}
		actual, lastErr = state, err

		if !time.Now().Before(deadline) {
			if lastErr != nil {
				return actual, errors.Join(errPollTimeout, lastErr)
			}
			return actual, errPollTimeout
		}

		select {
		case <-ctx.Done():
			return actual, ctx.Err()
		case <-ticker.C:
		}
	}
}
