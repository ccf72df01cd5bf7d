package roleprofile

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed matches every failure to produce a profile.
	ErrGenerationFailed = errors.New("role profile generation failed")
	ErrNoPostings       = errors.New("no postings")
	ErrSynthesisFailed  = errors.New("ai synthesis failed")
	ErrInvalidRole      = errors.New("role name is required")
)

// GenerationError explains why a profile could not be generated.
// Reason is ErrNoPostings or ErrSynthesisFailed; Cause keeps the
// underlying model or validation error.
type GenerationError struct {
	Role   string
	Reason error
	Cause  error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generate profile for %q: %v: %v", e.Role, e.Reason, e.Cause)
	}
	return fmt.Sprintf("generate profile for %q: %v", e.Role, e.Reason)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed || target == e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Cause }
