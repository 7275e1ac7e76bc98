package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retry := rl.Allow("10.0.0.1")
	if allowed {
		t.Fatal("fourth request should be rejected")
	}
	if retry != time.Minute {
		t.Fatalf("retry-after = %v, want %v", retry, time.Minute)
	}
}

func TestAllowTracksClientsSeparately(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
		t.Fatal("first client's first request should be allowed")
	}
	if allowed, _ := rl.Allow("10.0.0.2"); !allowed {
		t.Fatal("second client should not share the first client's count")
	}
	if allowed, _ := rl.Allow("10.0.0.1"); allowed {
		t.Fatal("first client's second request should be rejected")
	}
}
