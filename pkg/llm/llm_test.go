package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func failing(calls *int) Generator {
	return GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		*calls++
		return "", Fail("fake", errors.New("upstream down"))
	})
}

func TestFailWrapsOnce(t *testing.T) {
	err := Fail("a", errors.New("boom"))
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Same(t, err, Fail("b", err))
}

func TestBreakerDisabledReturnsNext(t *testing.T) {
	var calls int
	next := failing(&calls)
	g := WithBreaker(next, BreakerSettings{}, nil)

	for range 10 {
		_, err := g.Generate(context.Background(), Request{})
		require.Error(t, err)
	}
	assert.Equal(t, 10, calls)
}

func TestBreakerOpensAndShortCircuits(t *testing.T) {
	var calls int
	g := WithBreaker(failing(&calls), BreakerSettings{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}, zap.NewNop())

	for range 3 {
		_, err := g.Generate(context.Background(), Request{})
		require.ErrorIs(t, err, ErrGenerationFailed)
	}
	assert.Equal(t, 3, calls)

	// Open: the provider is not called and there is no retry.
	_, err := g.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 3, calls)
}

func TestBreakerPassesSuccess(t *testing.T) {
	ok := GeneratorFunc(func(ctx context.Context, req Request) (string, error) { return "fine", nil })
	g := WithBreaker(ok, BreakerSettings{Enabled: true, MinRequests: 1, FailureRatio: 1}, nil)
	out, err := g.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "fine", out)
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ok := GeneratorFunc(func(ctx context.Context, req Request) (string, error) { return "answer", nil })

	out, err := WithLogging(ok, zap.New(core)).Generate(context.Background(), Request{Operation: "skill_gap", Mode: ModeJSON})
	require.NoError(t, err)
	assert.Equal(t, "answer", out)

	entries := logs.FilterMessage("ai generation completed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "skill_gap", ctx["operation"])
	assert.Equal(t, "json", ctx["mode"])
	assert.Equal(t, "answer", ctx["response_preview"])

	var calls int
	_, err = WithLogging(failing(&calls), zap.New(core)).Generate(context.Background(), Request{Operation: "x"})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("ai generation failed").Len())
}

func TestWithMetricsPassesThrough(t *testing.T) {
	var calls int
	_, err := WithMetrics(failing(&calls)).Generate(context.Background(), Request{Operation: "test"})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "canceled", outcome(context.Canceled))
}
