package roleprofile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/validate"
)

type memRepo struct {
	mu      sync.Mutex
	rows    map[string]Profile
	upserts int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]Profile{}} }

func (r *memRepo) GetByRoleName(_ context.Context, roleName string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[roleName]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *memRepo) Upsert(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if old, ok := r.rows[p.RoleName]; ok {
		p.ID = old.ID
	}
	r.rows[p.RoleName] = p
	return p, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeJobs struct {
	calls   atomic.Int32
	queries []string
	mu      sync.Mutex
	result  []string
}

func (f *fakeJobs) Name() string { return "arbeitnow.com" }

func (f *fakeJobs) Search(_ context.Context, roleName string) []string {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, roleName)
	f.mu.Unlock()
	return f.result
}

type fakeAI struct {
	calls  atomic.Int32
	delay  time.Duration
	answer string
	err    error
	last   llm.Request
	mu     sync.Mutex
}

func (f *fakeAI) Generate(_ context.Context, req llm.Request) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.answer, f.err
}

const profileJSON = "```json\n" + `{
  "ideal_profile_summary": "A frontend developer who ships accessible UIs.",
  "top_technical_skills": ["React", " TypeScript ", "CSS"],
  "top_soft_skills": ["Communication", "Ownership"]
}` + "\n```"

type fixture struct {
	repo *memRepo
	jobs *fakeJobs
	ai   *fakeAI
	now  time.Time
	svc  UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: newMemRepo(),
		jobs: &fakeJobs{result: []string{"posting one", "posting two", "posting three"}},
		ai:   &fakeAI{answer: profileJSON},
		now:  time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.repo, f.jobs, f.ai, WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) externalCalls() int {
	return int(f.jobs.calls.Load() + f.ai.calls.Load())
}

func TestGetOrCreateEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.GetOrCreate(ctx, "Frontend Developer")
	require.NoError(t, err)

	assert.Equal(t, "frontend developer", p.RoleName)
	assert.Equal(t, "A frontend developer who ships accessible UIs.", p.IdealProfileText)
	assert.Equal(t, []string{"React", "TypeScript", "CSS"}, p.TopSkills.Technical)
	assert.Equal(t, []string{"Communication", "Ownership"}, p.TopSkills.Soft)
	assert.Equal(t, SourceMetadata{Source: "arbeitnow.com", JobsAnalyzed: 3}, p.Source)
	assert.Equal(t, f.now, p.CreatedAt)
	assert.Equal(t, 1, f.repo.count())

	// The job board gets the display name, not the cache key.
	assert.Equal(t, []string{"Frontend Developer"}, f.jobs.queries)

	req := f.ai.last
	assert.Equal(t, llm.ModeJSON, req.Mode)
	assert.Same(t, &validate.RoleProfileSchema, req.Schema)
	assert.Contains(t, req.Prompt, "posting one\n\n---JOB SEPARATOR---\n\nposting two")

	// Second call within the window: identical row, no external calls.
	f.now = f.now.Add(3 * 24 * time.Hour)
	again, err := f.svc.GetOrCreate(ctx, "  frontend DEVELOPER ")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, int32(1), f.jobs.calls.Load())
	assert.Equal(t, int32(1), f.ai.calls.Load())
}

func TestFreshnessBoundary(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		regenerate bool
	}{
		{name: "six days old is fresh", age: 6 * 24 * time.Hour},
		{name: "exactly seven days is fresh", age: DefaultTTL},
		{name: "seven days and a second is stale", age: DefaultTTL + time.Second, regenerate: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			oldID := mustSeed(t, f.repo, Profile{
				RoleName:         "backend engineer",
				IdealProfileText: "old text",
				CreatedAt:        f.now.Add(-tt.age),
			})

			p, err := f.svc.GetOrCreate(context.Background(), "Backend Engineer")
			require.NoError(t, err)

			if !tt.regenerate {
				assert.Zero(t, f.externalCalls())
				assert.Equal(t, "old text", p.IdealProfileText)
				return
			}
			assert.Equal(t, int32(1), f.jobs.calls.Load())
			assert.Equal(t, int32(1), f.ai.calls.Load())
			// Overwritten in place.
			assert.Equal(t, oldID, p.ID)
			assert.Equal(t, f.now, p.CreatedAt)
			assert.NotEqual(t, "old text", p.IdealProfileText)
			assert.Equal(t, 1, f.repo.count())
		})
	}
}

func TestCustomTTL(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repo, f.jobs, f.ai, WithClock(func() time.Time { return f.now }), WithTTL(time.Hour))
	mustSeed(t, f.repo, Profile{RoleName: "qa", CreatedAt: f.now.Add(-2 * time.Hour)})

	_, err := svc.GetOrCreate(context.Background(), "QA")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.ai.calls.Load())
}

func TestNoPostings(t *testing.T) {
	f := newFixture(t)
	f.jobs.result = nil

	_, err := f.svc.GetOrCreate(context.Background(), "Underwater Welder")
	require.ErrorIs(t, err, ErrGenerationFailed)
	require.ErrorIs(t, err, ErrNoPostings)
	assert.Zero(t, f.ai.calls.Load())
	assert.Zero(t, f.repo.count())
}

func TestMalformedAIOutputWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.ai.answer = "Sure! ```json\n{invalid"

	_, err := f.svc.GetOrCreate(context.Background(), "Frontend Developer")
	require.ErrorIs(t, err, ErrGenerationFailed)
	require.ErrorIs(t, err, ErrSynthesisFailed)
	require.ErrorIs(t, err, validate.ErrMalformedResponse)
	assert.Zero(t, f.repo.upserts)
}

func TestStaleRowKeptWhenRegenerationFails(t *testing.T) {
	f := newFixture(t)
	seeded := Profile{RoleName: "devops", IdealProfileText: "old", CreatedAt: f.now.Add(-30 * 24 * time.Hour)}
	mustSeed(t, f.repo, seeded)
	f.ai.answer = `{"ideal_profile_summary":"x","top_technical_skills":[],"top_soft_skills":[]}`

	_, err := f.svc.GetOrCreate(context.Background(), "DevOps")
	require.ErrorIs(t, err, validate.ErrSchemaViolation)
	assert.Zero(t, f.repo.upserts)

	stored, err := f.repo.GetByRoleName(context.Background(), "devops")
	require.NoError(t, err)
	assert.Equal(t, "old", stored.IdealProfileText)
}

func TestAIFailure(t *testing.T) {
	f := newFixture(t)
	f.ai.err = llm.Fail("fake", errors.New("quota"))

	_, err := f.svc.GetOrCreate(context.Background(), "Go Developer")
	require.ErrorIs(t, err, ErrSynthesisFailed)
	require.ErrorIs(t, err, llm.ErrGenerationFailed)

	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "Go Developer", ge.Role)
	assert.Zero(t, f.repo.count())
}

func TestInvalidRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrCreate(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidRole)
	assert.Zero(t, f.externalCalls())
}

func TestConcurrentCallersShareOneGeneration(t *testing.T) {
	f := newFixture(t)
	f.ai.delay = 50 * time.Millisecond

	const n = 20
	var wg sync.WaitGroup
	results := make([]Profile, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := "Data Engineer"
			if i%2 == 0 {
				name = strings.ToUpper(name)
			}
			results[i], errs[i] = f.svc.GetOrCreate(context.Background(), name)
		}()
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID)
	}
	assert.Equal(t, 1, f.repo.count())
	assert.Equal(t, int32(1), f.ai.calls.Load())
}

func TestConcurrentServicesKeepOneRow(t *testing.T) {
	// Separate services model separate processes sharing a store:
	// both may generate, but the upsert keeps a single row.
	repo := newMemRepo()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := WithClock(func() time.Time { return now })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs := &fakeJobs{result: []string{fmt.Sprintf("posting %d", i)}}
			svc := NewService(repo, jobs, &fakeAI{answer: profileJSON, delay: 10 * time.Millisecond}, clock)
			_, err := svc.GetOrCreate(context.Background(), "ML Engineer")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, repo.count())
}

func TestCallerCancellation(t *testing.T) {
	f := newFixture(t)
	f.ai.delay = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.GetOrCreate(ctx, "SRE")
	require.ErrorIs(t, err, context.Canceled)
}

func mustSeed(t *testing.T, repo *memRepo, p Profile) uuid.UUID {
	t.Helper()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored, err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)
	repo.upserts = 0
	return stored.ID
}
