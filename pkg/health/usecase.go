package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready returns per-dependency status ("ok" or the error text) and a
	// joined error naming every failed dependency.
	Ready(ctx context.Context) (map[string]string, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

func (s *service) Ready(ctx context.Context) (map[string]string, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		errs   []error
		report = make(map[string]string, len(s.checkers))
	)
	for _, ch := range s.checkers {
		wg.Add(1)
		go func(ch Checker) {
			defer wg.Done()
			err := ch.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report[ch.Name()] = err.Error()
				errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
				return
			}
			report[ch.Name()] = "ok"
		}(ch)
	}
	wg.Wait()
	return report, errors.Join(errs...)
}
