package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/skillsync/pkg/resume"
)

const defaultListLimit = 50

// ResumeRepository хранит резюме и извлечённый текст.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, filename, mime_type, size_bytes, extracted_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, rs.ID, rs.OwnerID, rs.Filename, rs.MimeType, rs.SizeBytes, rs.ExtractedText, rs.CreatedAt)
	return err
}

func (r *ResumeRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, extracted_text, created_at
FROM resumes WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	var m resume.Resume
	var created time.Time
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Filename, &m.MimeType, &m.SizeBytes, &m.ExtractedText, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	m.CreatedAt = created.UTC()
	return m, nil
}

// ListByOwner не читает extracted_text: список нужен только для истории.
func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, created_at
FROM resumes WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []resume.Resume{}
	for rows.Next() {
		var m resume.Resume
		var created time.Time
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Filename, &m.MimeType, &m.SizeBytes, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}
