package roleprofile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Repository when no row exists for a role.
var ErrNotFound = errors.New("role profile not found")

// Skills is the skill breakdown stored as JSONB.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// SourceMetadata records where a profile came from.
type SourceMetadata struct {
	Source       string `json:"source"`
	JobsAnalyzed int    `json:"jobs_analyzed"`
}

// Profile is the cached ideal-candidate description for a normalized role name.
type Profile struct {
	ID               uuid.UUID      `json:"id"`
	RoleName         string         `json:"role_name"`
	IdealProfileText string         `json:"ideal_profile_text"`
	TopSkills        Skills         `json:"top_skills"`
	Source           SourceMetadata `json:"source_metadata"`
	CreatedAt        time.Time      `json:"created_at"`
}

// AllSkills returns technical skills followed by soft skills.
func (p Profile) AllSkills() []string {
	out := make([]string, 0, len(p.TopSkills.Technical)+len(p.TopSkills.Soft))
	out = append(out, p.TopSkills.Technical...)
	return append(out, p.TopSkills.Soft...)
}

// Repository persists profiles, one row per normalized role name.
type Repository interface {
	GetByRoleName(ctx context.Context, roleName string) (Profile, error)
	// Upsert inserts p or overwrites the existing row for p.RoleName in
	// place, keeping its id. It returns the stored row.
	Upsert(ctx context.Context, p Profile) (Profile, error)
}

// JobSource finds job descriptions for a role. It reports problems as an
// empty result.
type JobSource interface {
	Name() string
	Search(ctx context.Context, roleName string) []string
}

// NormalizeRoleName produces the cache key for a role.
func NormalizeRoleName(roleName string) string {
	return strings.ToLower(strings.TrimSpace(roleName))
}
