package main

import "testing"

func TestSessionLimiterCapsPerIP(t *testing.T) {
	limiter := newSessionLimiter(2)

	if !limiter.acquire("10.0.0.1") || !limiter.acquire("10.0.0.1") {
		t.Fatal("sessions under the limit must be accepted")
	}
	if limiter.acquire("10.0.0.1") {
		t.Fatal("session past the limit must be refused")
	}
	if !limiter.acquire("10.0.0.2") {
		t.Fatal("another IP must not be affected by a full one")
	}

	limiter.release("10.0.0.1")
	if !limiter.acquire("10.0.0.1") {
		t.Fatal("a released berth must be reusable")
	}
}

func TestSessionLimiterForgetsIdleIPs(t *testing.T) {
	limiter := newSessionLimiter(1)

	limiter.acquire("10.0.0.3")
	limiter.release("10.0.0.3")

	if _, tracked := limiter.active["10.0.0.3"]; tracked {
		t.Fatal("an IP with no active sessions must be dropped from the map")
	}
}
