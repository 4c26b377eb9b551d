package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/lawchemical/Draft-Order-App/internal/config"
)

// Do calls fn until it succeeds, returns an error retryable rejects, or the
// policy runs out of attempts. Attempt indices start at 0 and the last error
// is returned on exhaustion. A nil retryable retries every error.
func Do(ctx context.Context, retryPolicy config.Retry, retryable func(error) bool, fn func(attempt int) error) error {
	attempts := retryPolicy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < attempts; i++ {
		if err = fn(i); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(Backoff(retryPolicy, i, r)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Backoff is Base*2^attempt capped at Max, plus up to Jitter of random delay.
func Backoff(retryPolicy config.Retry, attempt int, r *rand.Rand) time.Duration {
	d := retryPolicy.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if retryPolicy.Max > 0 && d > retryPolicy.Max {
			d = retryPolicy.Max
			break
		}
	}
	if retryPolicy.Max > 0 && d > retryPolicy.Max {
		d = retryPolicy.Max
	}
	if retryPolicy.Jitter > 0 && r != nil {
		d += time.Duration(r.Int63n(int64(retryPolicy.Jitter)))
	}
	return d
}
