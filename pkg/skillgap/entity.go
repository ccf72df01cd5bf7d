package skillgap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/skillsync/pkg/validate"
)

var (
	ErrNotFound          = errors.New("skill gap analysis not found")
	ErrInvalidPreference = errors.New("invalid learning preference")
	ErrAnalysisFailed    = errors.New("skill gap analysis failed")
)

// LearningPreference steers the shape of generated learning plans.
type LearningPreference string

const (
	PreferCodingProjects LearningPreference = "Coding Projects"
	PreferVideoCourses   LearningPreference = "Video Courses"
	PreferReadingDocs    LearningPreference = "Reading / Docs"

	DefaultPreference = PreferCodingProjects
)

var preferenceAliases = map[string]LearningPreference{
	"coding projects": PreferCodingProjects,
	"coding_projects": PreferCodingProjects,
	"video courses":   PreferVideoCourses,
	"video_courses":   PreferVideoCourses,
	"reading / docs":  PreferReadingDocs,
	"reading_docs":    PreferReadingDocs,
}

// ParseLearningPreference is case-insensitive; an empty value yields the default.
func ParseLearningPreference(s string) (LearningPreference, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPreference, nil
	}
	if p, ok := preferenceAliases[s]; ok {
		return p, nil
	}
	return "", ErrInvalidPreference
}

type MatchStatus string

const (
	Matched MatchStatus = validate.StatusMatched
	Partial MatchStatus = validate.StatusPartial
	Missing MatchStatus = validate.StatusMissing
)

// Step — один шаг плана обучения.
type Step struct {
	StepTitle      string  `json:"step_title"`
	EstimatedHours float64 `json:"estimated_hours"`
	Details        string  `json:"details"`
}

// Item — сравнение по одному навыку. LearningPlan пуст только для Matched.
type Item struct {
	SkillName     string      `json:"skill_name"`
	MatchStatus   MatchStatus `json:"match_status"`
	Justification string      `json:"justification"`
	LearningPlan  []Step      `json:"learning_plan"`
}

// Result is the validated model answer.
type Result struct {
	SkillMatchScore float64 `json:"skill_match_score"`
	AnalysisSummary string  `json:"analysis_summary"`
	SkillComparison []Item  `json:"skill_comparison"`
}

// Record — сохранённый результат анализа.
type Record struct {
	ID                 uuid.UUID          `json:"id"`
	OwnerID            uuid.UUID          `json:"owner_id"`
	ResumeID           uuid.UUID          `json:"resume_id"`
	RoleName           string             `json:"role_name"`
	LearningPreference LearningPreference `json:"learning_preference"`
	Result             Result             `json:"result"`
	CreatedAt          time.Time          `json:"created_at"`
}

// Repository — порт для сохранения/чтения анализов.
type Repository interface {
	Create(ctx context.Context, r Record) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
