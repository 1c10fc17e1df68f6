package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("client-a") {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	if limiter.Allow("client-a") {
		t.Error("hit over the budget should be denied")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(time.Minute, 1)

	if !limiter.Allow("client-a") {
		t.Fatal("first hit for client-a should be allowed")
	}
	if !limiter.Allow("client-b") {
		t.Error("client-b should not share client-a's budget")
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	limiter := NewLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("client-a") {
		t.Fatal("first hit should be allowed")
	}
	if limiter.Allow("client-a") {
		t.Fatal("second hit inside the window should be denied")
	}

	time.Sleep(20 * time.Millisecond)

	if !limiter.Allow("client-a") {
		t.Error("hit after the window expires should be allowed")
	}
}
