package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFixedDelay_Wait(t *testing.T) {
	tests := []struct {
		name    string
		delay   time.Duration
		wantMin time.Duration
	}{
		{
			name:    "short delay",
			delay:   30 * time.Millisecond,
			wantMin: 30 * time.Millisecond,
		},
		{
			name:    "zero delay disables pause",
			delay:   0,
			wantMin: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewFixedDelay(tt.delay, zerolog.Nop())

			start := time.Now()
			if err := policy.Wait(context.Background(), 0); err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
			elapsed := time.Since(start)

			if elapsed < tt.wantMin {
				t.Errorf("Wait() returned after %v, want at least %v", elapsed, tt.wantMin)
			}
			if policy.Delay() != tt.delay {
				t.Errorf("Delay() = %v, want %v", policy.Delay(), tt.delay)
			}
		})
	}
}

func TestFixedDelay_WaitCancelled(t *testing.T) {
	policy := NewFixedDelay(5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := policy.Wait(ctx, 3)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait() ignored cancellation, took %v", elapsed)
	}
}

func TestFixedDelay_ImplementsPolicy(t *testing.T) {
	var _ Policy = NewFixedDelay(DefaultDelay, zerolog.Nop())

	if DefaultDelay != time.Second {
		t.Errorf("DefaultDelay = %v, want 1s", DefaultDelay)
	}
}
