package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(5, time.Second)

	// Initial capacity
	for i := 0; i < 5; i++ {
		if !tb.Allow() {
			t.Errorf("expected token %d to be available", i+1)
		}
	}

	// Exhaustion
	if tb.Allow() {
		t.Error("expected no more tokens to be available")
	}

	// Refill after the period elapses
	time.Sleep(time.Second + 100*time.Millisecond)
	if !tb.Allow() {
		t.Error("expected tokens to be refilled after waiting")
	}

	// Reset restores full capacity
	tb.tokens = 0
	tb.Reset()
	if tb.tokens != tb.capacity {
		t.Error("expected tokens to be reset to capacity")
	}
}

func TestTokenBucketWait(t *testing.T) {
	tb := NewTokenBucket(1, 200*time.Millisecond)

	if !tb.Allow() {
		t.Fatal("expected first token to be available")
	}

	start := time.Now()
	tb.Wait()
	elapsed := time.Since(start)

	if elapsed < 100*time.Millisecond {
		t.Errorf("expected Wait to block until refill, returned after %v", elapsed)
	}
}
