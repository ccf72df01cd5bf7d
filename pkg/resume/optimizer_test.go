package resume

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/roleprofile"
)

type stubProfiles struct {
	profile roleprofile.Profile
	err     error
}

func (s stubProfiles) GetOrCreate(context.Context, string) (roleprofile.Profile, error) {
	return s.profile, s.err
}

var backendProfile = roleprofile.Profile{
	ID:               uuid.New(),
	RoleName:         "backend developer",
	IdealProfileText: "Builds reliable services.",
	TopSkills: roleprofile.Skills{
		Technical: []string{"Go", "Kubernetes"},
		Soft:      []string{"Communication"},
	},
	CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

func TestOptimize(t *testing.T) {
	var got llm.Request
	ai := llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		got = req
		return "  JANE DOE\nGo engineer  \n", nil
	})
	o := NewOptimizer(ai, newMemRepo(), stubProfiles{profile: backendProfile}, nil)

	out := o.Optimize(context.Background(), "Golang services", backendProfile)
	assert.Equal(t, "JANE DOE\nGo engineer", out)
	assert.Equal(t, llm.ModeText, got.Mode)
	assert.Equal(t, "optimize_resume", got.Operation)
	assert.Contains(t, got.Prompt, "Builds reliable services.")
	assert.Contains(t, got.Prompt, "Keywords not yet present in the resume: Kubernetes, Communication")
	assert.Contains(t, got.Prompt, "Golang services")
}

func TestOptimize_FailsSoft(t *testing.T) {
	ai := llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) {
		return "", llm.Fail("test", errors.New("boom"))
	})
	o := NewOptimizer(ai, newMemRepo(), stubProfiles{profile: backendProfile}, nil)
	assert.Equal(t, OptimizeFailed, o.Optimize(context.Background(), "text", backendProfile))
}

func TestOptimizeForRole(t *testing.T) {
	repo := newMemRepo()
	owner := uuid.New()
	r := Resume{ID: uuid.New(), OwnerID: owner, ExtractedText: "Go and Kubernetes", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), r))

	ai := llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) { return "rewritten", nil })

	o := NewOptimizer(ai, repo, stubProfiles{profile: backendProfile}, nil)
	out, err := o.OptimizeForRole(context.Background(), owner, r.ID, "Backend Developer")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", out)

	_, err = o.OptimizeForRole(context.Background(), uuid.New(), r.ID, "Backend Developer")
	assert.ErrorIs(t, err, ErrNotFound)

	o = NewOptimizer(ai, repo, stubProfiles{err: &roleprofile.GenerationError{Role: "backend developer", Reason: roleprofile.ErrNoPostings}}, nil)
	_, err = o.OptimizeForRole(context.Background(), owner, r.ID, "Backend Developer")
	assert.ErrorIs(t, err, roleprofile.ErrNoPostings)
}
