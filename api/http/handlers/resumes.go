package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/skillsync/api/http/presenter"
	"github.com/artem13815/skillsync/pkg/resume"
)

type ResumesHandler struct {
	useCase   resume.UseCase
	optimizer *resume.Optimizer
	maxBytes  int64
}

func NewResumesHandler(useCase resume.UseCase, optimizer *resume.Optimizer, maxBytes int64) *ResumesHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20 // 15MB
	}
	return &ResumesHandler{useCase: useCase, optimizer: optimizer, maxBytes: maxBytes}
}

type uploadResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
	TextPreview string    `json:"text_preview"`
}

// Upload загружает файл резюме и извлекает из него текст.
// @Summary Загрузить резюме
// @Description Принимает PDF/DOCX, извлекает текст и сохраняет его для анализа.
// @Tags        Резюме
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл резюме (PDF/DOCX)"
// @Security    BearerAuth
// @Success     201 {object} uploadResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     413 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	if _, err := resume.MimeType(fh.Filename); err != nil {
		return respondError(c, err, "")
	}
	if fh.Size > h.maxBytes {
		return respondError(c, resume.ErrTooLarge, "")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return respondError(c, err, "failed to read uploaded file")
	}

	res, err := h.useCase.Upload(c.UserContext(), uid, fh.Filename, data)
	if err != nil {
		return respondError(c, err, "failed to save resume")
	}
	return presenter.JSON(c, http.StatusCreated, uploadResponse{
		ID:          res.Resume.ID.String(),
		Filename:    res.Resume.Filename,
		SizeBytes:   res.Resume.SizeBytes,
		UploadedAt:  res.Resume.CreatedAt,
		TextPreview: res.TextPreview,
	})
}

// readAtMost reads r fully, failing with resume.ErrTooLarge past limit bytes.
func readAtMost(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, resume.ErrTooLarge
	}
	return data, nil
}

// List возвращает историю резюме пользователя, новые первыми.
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Param   limit  query int false "limit (1..200, default 50)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.UserContext(), uid, limit, offset)
	if err != nil {
		return respondError(c, err, "failed to list resumes")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает метаданные и извлечённый текст.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.useCase.Get(c.UserContext(), uid, id)
	if err != nil {
		return respondError(c, err, "failed to load resume")
	}
	return presenter.JSON(c, http.StatusOK, r)
}

// Delete удаляет резюме вместе с его анализами.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.useCase.Delete(c.UserContext(), uid, id); err != nil {
		return respondError(c, err, "failed to delete resume")
	}
	return c.SendStatus(http.StatusNoContent)
}

type roleRequest struct {
	RoleName string `json:"role_name"`
}

type optimizeResponse struct {
	OptimizedResumeText string `json:"optimized_resume_text"`
}

// Optimize переписывает резюме под целевую роль в ATS-дружественном виде.
// @Summary Оптимизировать резюме под роль
// @Tags    Резюме
// @Accept  json
// @Produce json
// @Param   id    path string      true "ID резюме (UUID)"
// @Param   input body roleRequest true "целевая роль"
// @Security BearerAuth
// @Success 200 {object} optimizeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/optimize [post]
func (h *ResumesHandler) Optimize(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.RoleName) == "" {
		return presenter.Error(c, http.StatusBadRequest, "role_name is required")
	}
	text, err := h.optimizer.OptimizeForRole(c.UserContext(), uid, id, req.RoleName)
	if err != nil {
		return respondError(c, err, "failed to optimize resume")
	}
	return presenter.JSON(c, http.StatusOK, optimizeResponse{OptimizedResumeText: text})
}
