package infra

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	if got := CalculateBackoff(0); got != 1*time.Second {
		t.Errorf("Backoff(0) = %v, want 1s", got)
	}
	if got := CalculateBackoff(1); got != 2*time.Second {
		t.Errorf("Backoff(1) = %v, want 2s", got)
	}
	if got := CalculateBackoff(3); got != 8*time.Second {
		t.Errorf("Backoff(3) = %v, want 8s", got)
	}
	if got := CalculateBackoff(30); got != 60*time.Second {
		t.Errorf("Backoff(30) = %v, want capped at 60s", got)
	}
	if got := CalculateBackoff(500); got != 60*time.Second {
		t.Errorf("Backoff(500) = %v, want capped at 60s (no overflow)", got)
	}
}
