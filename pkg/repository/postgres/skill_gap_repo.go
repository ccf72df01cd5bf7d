package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/skillsync/pkg/skillgap"
)

// SkillGapRepository сохраняет результаты анализа разрыва навыков.
type SkillGapRepository struct {
	pool *pgxpool.Pool
}

func NewSkillGapRepository(pool *pgxpool.Pool) *SkillGapRepository {
	return &SkillGapRepository{pool: pool}
}

func (r *SkillGapRepository) Create(ctx context.Context, rec skillgap.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO skill_gap_analyses (id, owner_id, resume_id, role_name, learning_preference, match_score, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, rec.ID, rec.OwnerID, rec.ResumeID, rec.RoleName, string(rec.LearningPreference), rec.Result.SkillMatchScore, result, rec.CreatedAt)
	return err
}

const skillGapColumns = `id, owner_id, resume_id, role_name, learning_preference, result, created_at`

func (r *SkillGapRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (skillgap.Record, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+skillGapColumns+`
FROM skill_gap_analyses WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	rec, err := scanSkillGap(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return skillgap.Record{}, skillgap.ErrNotFound
	}
	return rec, err
}

func (r *SkillGapRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]skillgap.Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+skillGapColumns+`
FROM skill_gap_analyses WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []skillgap.Record{}
	for rows.Next() {
		rec, err := scanSkillGap(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *SkillGapRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skill_gap_analyses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return skillgap.ErrNotFound
	}
	return nil
}

func scanSkillGap(row pgx.Row) (skillgap.Record, error) {
	var rec skillgap.Record
	var pref string
	var result []byte
	var created time.Time
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.ResumeID, &rec.RoleName, &pref, &result, &created); err != nil {
		return skillgap.Record{}, err
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return skillgap.Record{}, fmt.Errorf("decode result: %w", err)
	}
	rec.LearningPreference = skillgap.LearningPreference(pref)
	rec.CreatedAt = created.UTC()
	return rec, nil
}
