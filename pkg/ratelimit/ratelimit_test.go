package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	l := New(Config{})
	if l.Enabled() {
		t.Fatal("limiter without an address must be disabled")
	}
	if l.limit != DefaultLimit || l.window != DefaultWindow {
		t.Fatalf("defaults not applied: limit=%d window=%v", l.limit, l.window)
	}
	if l.prefix == "" {
		t.Fatal("default prefix not applied")
	}
}

func TestDisabledLimiterFailsOpen(t *testing.T) {
	l := New(Config{Limit: 1, Window: time.Minute})

	// Well past the configured limit, every call is still admitted.
	for i := 0; i < 10; i++ {
		result := l.Limit(context.Background(), "user-1")
		if !result.Allowed {
			t.Fatalf("call %d rejected by disabled limiter", i)
		}
		if result.Remaining != openRemaining {
			t.Fatalf("call %d remaining = %d, want sentinel %d", i, result.Remaining, openRemaining)
		}
	}
}

func TestWindowResult(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		count         int64
		wantAllowed   bool
		wantRemaining int
	}{
		{"first call", 1, true, 4},
		{"at the limit", 5, true, 0},
		{"one past the limit", 6, false, 0},
		{"far past the limit", 50, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := windowResult(5, time.Hour, tc.count, base)
			if result.Allowed != tc.wantAllowed {
				t.Fatalf("allowed = %v, want %v", result.Allowed, tc.wantAllowed)
			}
			if result.Remaining != tc.wantRemaining {
				t.Fatalf("remaining = %d, want %d", result.Remaining, tc.wantRemaining)
			}
			if !result.ResetAt.Equal(base.Add(time.Hour)) {
				t.Fatalf("resetAt = %v, want oldest+window", result.ResetAt)
			}
		})
	}
}

// The reset instant tracks the oldest retained event, so a rejected user
// regains capacity as soon as that event ages out of the window.
func TestWindowResult_ResetTracksOldest(t *testing.T) {
	oldest := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	later := oldest.Add(20 * time.Minute)

	first := windowResult(5, time.Hour, 6, oldest)
	second := windowResult(5, time.Hour, 6, later)

	if !second.ResetAt.After(first.ResetAt) {
		t.Fatalf("resetAt must advance with the oldest event: %v vs %v", first.ResetAt, second.ResetAt)
	}
}
