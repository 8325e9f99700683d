package engine

import "time"

const (
	DefaultMaxRetries   = 3
	DefaultRetryBase    = 2 * time.Second
	DefaultRetryMaxWait = 30 * time.Second
)

// Backoff computes load retry delays: Base * 2^attempt, capped at Max.
// There is no jitter, so successive delays never decrease.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait before retry number attempt (zero-based).
func (b Backoff) Delay(attempt int) time.Duration {
	base, maxWait := b.Base, b.Max
	if base <= 0 {
		base = DefaultRetryBase
	}
	if maxWait <= 0 {
		maxWait = DefaultRetryMaxWait
	}
	if attempt < 0 {
		attempt = 0
	}
	// a shift this large would overflow int64 nanoseconds
	if attempt > 30 {
		return maxWait
	}

	d := base << attempt
	if d <= 0 || d > maxWait {
		return maxWait
	}
	return d
}
