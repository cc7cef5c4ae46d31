package transliteration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing backend. After maxFailures consecutive
// failures calls fail fast with gobreaker.ErrOpenState until timeout passes.
type Breaker struct {
	next Service
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker
func NewBreaker(next Service, maxFailures uint32, timeout time.Duration) *Breaker {
	if maxFailures == 0 {
		maxFailures = 3
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("transliteration circuit breaker changed state",
				"backend", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// countsAsSuccess keeps cancelled or timed out calls from tripping the
// breaker. They say nothing about the health of the backend.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Name returns the wrapped backend name
func (b *Breaker) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Simplify calls the wrapped backend through the breaker
func (b *Breaker) Simplify(ctx context.Context, text string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Simplify(ctx, text)
	})
	if err != nil {
		return "", err
	}

	simplified, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected simplify result %T", result)
	}
	return simplified, nil
}

// Transcribe calls the wrapped backend through the breaker
func (b *Breaker) Transcribe(ctx context.Context, text string) ([]string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Transcribe(ctx, text)
	})
	if err != nil {
		return nil, err
	}

	segments, ok := result.([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected transcribe result %T", result)
	}
	return segments, nil
}
