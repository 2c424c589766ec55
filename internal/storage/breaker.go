package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures WithBreaker.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after half of at least five calls fail and
// probes again after thirty seconds.
func DefaultBreakerSettings(backend string) BreakerSettings {
	return BreakerSettings{
		Name:             fmt.Sprintf("storage-%s", backend),
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.5,
	}
}

// Breaker fails fast while the wrapped store keeps erroring. An open breaker
// returns gobreaker.ErrOpenState, which callers see as a persistence failure.
type Breaker struct {
	next Store
	cb   *gobreaker.CircuitBreaker[[]byte]
}

// WithBreaker wraps s in a circuit breaker. Absent keys are not failures.
func WithBreaker(s Store, cfg BreakerSettings) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// a cancelled request says nothing about backend health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("[storage] circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &Breaker{next: s, cb: gobreaker.NewCircuitBreaker[[]byte](settings)}
}

func (b *Breaker) Save(ctx context.Context, key string, value []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Save(ctx, key, value)
	})
	return err
}

func (b *Breaker) Load(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.next.Load(ctx, key)
	})
}

func (b *Breaker) Remove(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Remove(ctx, key)
	})
	return err
}

// State reports the breaker state (closed, half-open or open).
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) Close() error {
	return b.next.Close()
}
