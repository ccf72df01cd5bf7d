package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/skillsync/pkg/roleprofile"
)

// RoleProfileRepository implements roleprofile.Repository. Each method is a
// single statement; nothing holds a transaction across external calls.
type RoleProfileRepository struct {
	pool *pgxpool.Pool
}

func NewRoleProfileRepository(pool *pgxpool.Pool) *RoleProfileRepository {
	return &RoleProfileRepository{pool: pool}
}

func (r *RoleProfileRepository) GetByRoleName(ctx context.Context, roleName string) (roleprofile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, role_name, ideal_profile_text, top_skills, source_metadata, created_at
FROM role_profiles WHERE role_name = $1
`, roleName)
	p, err := scanRoleProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return roleprofile.Profile{}, roleprofile.ErrNotFound
	}
	return p, err
}

// Upsert relies on the unique role_name: a concurrent writer turns into an
// update of the same row, which keeps its original id.
func (r *RoleProfileRepository) Upsert(ctx context.Context, p roleprofile.Profile) (roleprofile.Profile, error) {
	skills, err := json.Marshal(p.TopSkills)
	if err != nil {
		return roleprofile.Profile{}, err
	}
	source, err := json.Marshal(p.Source)
	if err != nil {
		return roleprofile.Profile{}, err
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO role_profiles (id, role_name, ideal_profile_text, top_skills, source_metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (role_name) DO UPDATE SET
	ideal_profile_text = EXCLUDED.ideal_profile_text,
	top_skills = EXCLUDED.top_skills,
	source_metadata = EXCLUDED.source_metadata,
	created_at = EXCLUDED.created_at
RETURNING id, role_name, ideal_profile_text, top_skills, source_metadata, created_at
`, p.ID, p.RoleName, p.IdealProfileText, skills, source, p.CreatedAt)
	return scanRoleProfile(row)
}

func scanRoleProfile(row pgx.Row) (roleprofile.Profile, error) {
	var p roleprofile.Profile
	var skills, source []byte
	var created time.Time
	if err := row.Scan(&p.ID, &p.RoleName, &p.IdealProfileText, &skills, &source, &created); err != nil {
		return roleprofile.Profile{}, err
	}
	if err := json.Unmarshal(skills, &p.TopSkills); err != nil {
		return roleprofile.Profile{}, fmt.Errorf("decode top_skills: %w", err)
	}
	if err := json.Unmarshal(source, &p.Source); err != nil {
		return roleprofile.Profile{}, fmt.Errorf("decode source_metadata: %w", err)
	}
	p.CreatedAt = created.UTC()
	return p, nil
}
