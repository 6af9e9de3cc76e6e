package infra

import "time"

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// CalculateBackoff returns the delay before the given reconnect attempt:
// exponential from the base, capped at the maximum.
func CalculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return backoffBase
	}
	delay := backoffBase << uint(attempt)
	if delay > backoffMax || delay <= 0 {
		return backoffMax
	}
	return delay
}
