package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("resume not found")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	ErrNoText            = errors.New("could not extract text, the PDF might be image-based")
	ErrTooLarge          = errors.New("file is too large")
)

// Resume хранит метаданные загруженного файла и извлечённый текст.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Filename      string    `json:"filename"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	CreatedAt     time.Time `json:"uploaded_at"`
}

// Repository — порт доступа к резюме. Все выборки ограничены владельцем.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	// ListByOwner returns newest first, without extracted text.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
