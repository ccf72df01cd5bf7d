package resume

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/logger"
)

const previewChars = 500

// UploadResult is returned after a successful upload.
type UploadResult struct {
	Resume      Resume
	TextPreview string
}

// UseCase describes resume management for the owning user.
type UseCase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (UploadResult, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo     Repository
	maxBytes int64
	log      *zap.Logger
}

// NewService returns the default implementation. maxBytes <= 0 disables the size check.
func NewService(repo Repository, maxBytes int64, log *zap.Logger) UseCase {
	return &service{repo: repo, maxBytes: maxBytes, log: logger.OrNop(log)}
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (UploadResult, error) {
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return UploadResult{}, ErrTooLarge
	}
	mimeType, err := MimeType(filename)
	if err != nil {
		return UploadResult{}, err
	}
	text, err := ParseText(filename, data)
	if err != nil {
		s.log.Info("resume text extraction failed", zap.String("filename", filename), zap.Error(err))
		return UploadResult{}, err
	}

	r := Resume{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Filename:      filename,
		MimeType:      mimeType,
		SizeBytes:     int64(len(data)),
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return UploadResult{}, err
	}
	s.log.Info("resume uploaded",
		zap.String("resume_id", r.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("text_chars", len(text)))
	return UploadResult{Resume: r, TextPreview: Preview(text)}, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}

// Preview returns the first 500 characters of text, marking truncation with "...".
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars]) + "..."
}
