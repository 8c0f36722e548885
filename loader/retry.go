package loader

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryableError marks a failure worth another attempt, such as a network
// error or a 5xx response. After is the wait the server asked for, if any.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// maxRetryAfter caps a server-requested wait
const maxRetryAfter = 10 * time.Second

// retry calls fn until it succeeds, fails permanently or runs out of
// attempts. The wait between attempts starts at delay and doubles, unless
// the failure names a longer one.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		var re *RetryableError
		if err == nil || !errors.As(err, &re) || attempt >= attempts {
			return err
		}

		wait := max(delay, re.After)
		delay *= 2

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// retryAfter reads a Retry-After header given in seconds. Dates and
// missing values yield 0.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
