package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// RetryProvider wraps a provider with a fixed-attempt exponential-backoff
// retry. Configuration errors are not retried.
type RetryProvider struct {
	inner    Provider
	attempts int
	delay    time.Duration
}

// NewRetryProvider wraps inner with retries. attempts is the number of
// additional tries after the first failure; delay doubles between tries.
func NewRetryProvider(inner Provider, attempts int, delay time.Duration) Provider {
	return &RetryProvider{
		inner:    inner,
		attempts: attempts,
		delay:    delay,
	}
}

// Synthesize calls the wrapped provider, retrying transient failures
func (p *RetryProvider) Synthesize(ctx context.Context, word string) ([]byte, error) {
	delay := p.delay

	var err error
	for attempt := 0; ; attempt++ {
		var pcm []byte
		pcm, err = p.inner.Synthesize(ctx, word)
		if err == nil {
			return pcm, nil
		}
		if errors.Is(err, ErrMissingKey) || errors.Is(err, gobreaker.ErrOpenState) {
			return nil, err
		}
		if attempt >= p.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("synthesis failed after %d attempts: %w", p.attempts+1, err)
}

// Name returns the provider name
func (p *RetryProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable checks the wrapped provider
func (p *RetryProvider) IsAvailable() error {
	return p.inner.IsAvailable()
}

// BreakerProvider wraps a provider with a circuit breaker so a failing
// speech backend trips open instead of burning quota on every word.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps inner with a circuit breaker. The breaker opens
// after five consecutive failures and probes again after thirty seconds.
func NewBreakerProvider(inner Provider) Provider {
	settings := gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize calls the wrapped provider through the breaker
func (p *BreakerProvider) Synthesize(ctx context.Context, word string) ([]byte, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.inner.Synthesize(ctx, word)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("speech service temporarily unavailable: %w", err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

// Name returns the provider name
func (p *BreakerProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable checks the wrapped provider
func (p *BreakerProvider) IsAvailable() error {
	return p.inner.IsAvailable()
}
