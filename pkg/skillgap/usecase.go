package skillgap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/resume"
	"github.com/artem13815/skillsync/pkg/roleprofile"
)

// ResumeSource resolves resumes scoped to their owner.
type ResumeSource interface {
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error)
}

type UseCase interface {
	Analyze(ctx context.Context, ownerID, resumeID uuid.UUID, roleName string, pref LearningPreference) (Record, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo     Repository
	resumes  ResumeSource
	profiles roleprofile.UseCase
	analyzer *Analyzer
	now      func() time.Time
	log      *zap.Logger
}

func NewService(repo Repository, resumes ResumeSource, profiles roleprofile.UseCase, analyzer *Analyzer, log *zap.Logger) UseCase {
	return &service{
		repo:     repo,
		resumes:  resumes,
		profiles: profiles,
		analyzer: analyzer,
		now:      time.Now,
		log:      logger.OrNop(log),
	}
}

func (s *service) Analyze(ctx context.Context, ownerID, resumeID uuid.UUID, roleName string, pref LearningPreference) (Record, error) {
	r, err := s.resumes.GetForOwner(ctx, ownerID, resumeID)
	if err != nil {
		return Record{}, err
	}
	profile, err := s.profiles.GetOrCreate(ctx, roleName)
	if err != nil {
		return Record{}, err
	}
	if pref == "" {
		pref = DefaultPreference
	}
	res, err := s.analyzer.Analyze(ctx, r.ExtractedText, profile, pref)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		ResumeID:           resumeID,
		RoleName:           profile.RoleName,
		LearningPreference: pref,
		Result:             res,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	s.log.Info("skill gap analysis saved",
		zap.String("analysis_id", rec.ID.String()),
		zap.String("role", rec.RoleName),
		zap.Float64("score", res.SkillMatchScore))
	return rec, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
