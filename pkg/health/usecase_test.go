package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	report, err := NewService(stubChecker{name: "postgres"}, nil, stubChecker{name: "gemini"}).Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"postgres": "ok", "gemini": "ok"}, report)
}

func TestReady_Failure(t *testing.T) {
	down := errors.New("connection refused")
	report, err := NewService(stubChecker{name: "postgres", err: down}, stubChecker{name: "gemini"}).Ready(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "postgres: connection refused")
	assert.Equal(t, "connection refused", report["postgres"])
	assert.Equal(t, "ok", report["gemini"])
}
