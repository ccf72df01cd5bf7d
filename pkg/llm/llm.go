package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/artem13815/skillsync/pkg/validate"
)

// ErrGenerationFailed marks any failure of the model call itself
// (transport, quota, empty answer, open breaker).
var ErrGenerationFailed = errors.New("ai generation failed")

// Mode selects the output format requested from the model.
type Mode int

const (
	ModeText Mode = iota
	ModeJSON
)

func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "text"
}

// Request is a single prompt sent to the model.
type Request struct {
	// Operation names the call site for logs and metrics.
	Operation string
	System    string
	Prompt    string
	Mode      Mode
	// Schema, when set, is forwarded to providers that support
	// constrained JSON output. Callers still validate the answer.
	Schema *validate.Schema
}

// Generator is the model port used by the domain. It hides concrete
// providers to preserve dependency direction.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Fail wraps a provider error so that it matches ErrGenerationFailed.
func Fail(provider string, err error) error {
	if errors.Is(err, ErrGenerationFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrGenerationFailed, provider, err)
}
