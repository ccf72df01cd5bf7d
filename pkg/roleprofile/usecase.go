package roleprofile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/metrics"
	"github.com/artem13815/skillsync/pkg/validate"
)

const (
	DefaultTTL = 7 * 24 * time.Hour

	defaultGenerationTimeout = 2 * time.Minute
	jobSeparator             = "\n\n---JOB SEPARATOR---\n\n"
)

// UseCase returns cached role profiles, regenerating missing or stale ones.
type UseCase interface {
	GetOrCreate(ctx context.Context, roleName string) (Profile, error)
}

type Option func(*service)

// WithTTL sets the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *service) { s.log = logger.OrNop(l) }
}

// WithGenerationTimeout bounds a single regeneration.
func WithGenerationTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.genTimeout = d
		}
	}
}

type service struct {
	repo       Repository
	jobs       JobSource
	ai         llm.Generator
	ttl        time.Duration
	genTimeout time.Duration
	now        func() time.Time
	log        *zap.Logger

	flight singleflight.Group
}

func NewService(repo Repository, jobs JobSource, ai llm.Generator, opts ...Option) UseCase {
	s := &service{
		repo:       repo,
		jobs:       jobs,
		ai:         ai,
		ttl:        DefaultTTL,
		genTimeout: defaultGenerationTimeout,
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetOrCreate(ctx context.Context, roleName string) (Profile, error) {
	key := NormalizeRoleName(roleName)
	if key == "" {
		return Profile{}, ErrInvalidRole
	}

	existing, found, err := s.lookup(ctx, key)
	if err != nil {
		return Profile{}, err
	}
	if found && s.fresh(existing) {
		metrics.RoleCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return existing, nil
	}
	if found {
		metrics.RoleCacheLookups.WithLabelValues(metrics.CacheStale).Inc()
	} else {
		metrics.RoleCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	}

	// One generation per key. It outlives a cancelled caller so that
	// other waiters still get the result and it is cached.
	ch := s.flight.DoChan(key, func() (any, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.genTimeout)
		defer cancel()
		return s.regenerate(genCtx, key, strings.TrimSpace(roleName))
	})
	select {
	case <-ctx.Done():
		return Profile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Profile{}, res.Err
		}
		return res.Val.(Profile), nil
	}
}

func (s *service) lookup(ctx context.Context, key string) (Profile, bool, error) {
	p, err := s.repo.GetByRoleName(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("lookup role profile: %w", err)
	}
	return p, true, nil
}

func (s *service) fresh(p Profile) bool {
	return !p.CreatedAt.Before(s.now().Add(-s.ttl))
}

func (s *service) regenerate(ctx context.Context, key, displayName string) (Profile, error) {
	// A previous flight may have stored a fresh row after our lookup.
	if p, found, err := s.lookup(ctx, key); err != nil {
		return Profile{}, err
	} else if found && s.fresh(p) {
		return p, nil
	}

	log := s.log.With(zap.String("role", key))

	descriptions := s.jobs.Search(ctx, displayName)
	if len(descriptions) == 0 {
		metrics.RoleGenerations.WithLabelValues("no_postings").Inc()
		log.Info("no job postings found for role")
		return Profile{}, &GenerationError{Role: displayName, Reason: ErrNoPostings}
	}

	synth, err := s.synthesize(ctx, displayName, descriptions)
	if err != nil {
		metrics.RoleGenerations.WithLabelValues("synthesis_failed").Inc()
		log.Warn("role profile synthesis failed", zap.Int("postings", len(descriptions)), zap.Error(err))
		return Profile{}, &GenerationError{Role: displayName, Reason: ErrSynthesisFailed, Cause: err}
	}

	stored, err := s.repo.Upsert(ctx, Profile{
		ID:               uuid.New(),
		RoleName:         key,
		IdealProfileText: strings.TrimSpace(synth.Summary),
		TopSkills: Skills{
			Technical: cleanSkills(synth.Technical),
			Soft:      cleanSkills(synth.Soft),
		},
		Source: SourceMetadata{
			Source:       s.jobs.Name(),
			JobsAnalyzed: len(descriptions),
		},
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		metrics.RoleGenerations.WithLabelValues("store_failed").Inc()
		return Profile{}, fmt.Errorf("store role profile: %w", err)
	}
	metrics.RoleGenerations.WithLabelValues("ok").Inc()
	log.Info("role profile generated",
		zap.Int("postings", len(descriptions)),
		zap.Int("technical_skills", len(stored.TopSkills.Technical)),
		zap.Int("soft_skills", len(stored.TopSkills.Soft)))
	return stored, nil
}

type synthesis struct {
	Summary   string   `json:"ideal_profile_summary"`
	Technical []string `json:"top_technical_skills"`
	Soft      []string `json:"top_soft_skills"`
}

const synthesisSystem = "You are an expert career analyst and technical recruiter. You read job postings and describe the ideal candidate precisely. Answer with JSON only."

func (s *service) synthesize(ctx context.Context, roleName string, descriptions []string) (synthesis, error) {
	prompt := fmt.Sprintf(`Analyze the following %d job descriptions for the role %q.

Based only on these postings, produce a JSON object with:
- "ideal_profile_summary": a 3-5 sentence summary of the ideal candidate for this role.
- "top_technical_skills": the 5-10 most frequently mentioned technical skills, most important first.
- "top_soft_skills": the 3-5 most frequently mentioned soft skills.

Job descriptions:
%s`, len(descriptions), roleName, strings.Join(descriptions, jobSeparator))

	raw, err := s.ai.Generate(ctx, llm.Request{
		Operation: "role_profile",
		System:    synthesisSystem,
		Prompt:    prompt,
		Mode:      llm.ModeJSON,
		Schema:    &validate.RoleProfileSchema,
	})
	if err != nil {
		return synthesis{}, err
	}
	return validate.Decode[synthesis](raw, validate.RoleProfileSchema)
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}
