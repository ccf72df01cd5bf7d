package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/logger"
)

// BreakerSettings configures the circuit breaker around the model.
type BreakerSettings struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type breakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker[string]
}

// WithBreaker short-circuits calls while the provider keeps failing.
// It never retries. Disabled settings return next unchanged.
func WithBreaker(next Generator, s BreakerSettings, log *zap.Logger) Generator {
	if !s.Enabled {
		return next
	}
	log = logger.OrNop(log)
	settings := gobreaker.Settings{
		Name:        "ai-generate",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureRatio
		},
		// Caller cancellation says nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &breakerGenerator{next: next, cb: gobreaker.NewCircuitBreaker[string](settings)}
}

func (b *breakerGenerator) Generate(ctx context.Context, req Request) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		return b.next.Generate(ctx, req)
	})
	if err != nil {
		return "", Fail("breaker", err)
	}
	return out, nil
}
