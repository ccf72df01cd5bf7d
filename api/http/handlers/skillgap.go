package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/skillsync/api/http/presenter"
	"github.com/artem13815/skillsync/pkg/skillgap"
)

type SkillGapHandler struct {
	useCase skillgap.UseCase
}

func NewSkillGapHandler(useCase skillgap.UseCase) *SkillGapHandler {
	return &SkillGapHandler{useCase: useCase}
}

type skillGapRequest struct {
	ResumeID           string `json:"resume_id"`
	RoleName           string `json:"role_name"`
	LearningPreference string `json:"learning_preference"`
}

// Analyze compares a stored resume against the role profile and saves the result.
// @Summary Skill gap analysis
// @Tags    skill-gap
// @Accept  json
// @Produce json
// @Param   input body skillGapRequest true "analysis request"
// @Security BearerAuth
// @Success 200 {object} skillgap.Record
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /skill-gap/analyze [post]
func (h *SkillGapHandler) Analyze(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	var req skillGapRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	resumeID, err := uuid.Parse(strings.TrimSpace(req.ResumeID))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "resume_id must be a UUID")
	}
	if strings.TrimSpace(req.RoleName) == "" {
		return presenter.Error(c, http.StatusBadRequest, "role_name is required")
	}
	pref, err := skillgap.ParseLearningPreference(req.LearningPreference)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest,
			`learning_preference must be one of "Coding Projects", "Video Courses", "Reading / Docs"`)
	}

	rec, err := h.useCase.Analyze(c.UserContext(), uid, resumeID, req.RoleName, pref)
	if err != nil {
		return respondError(c, err, "failed to analyze skill gap")
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// List returns the caller's analyses, newest first.
// @Summary Skill gap history
// @Tags    skill-gap
// @Produce json
// @Param   limit  query int false "limit (1..200, default 50)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} skillgap.Record
// @Router  /skill-gap [get]
func (h *SkillGapHandler) List(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.UserContext(), uid, limit, offset)
	if err != nil {
		return respondError(c, err, "failed to list analyses")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get
// @Summary Get skill gap analysis
// @Tags    skill-gap
// @Produce json
// @Param   id path string true "analysis id (UUID)"
// @Security BearerAuth
// @Success 200 {object} skillgap.Record
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /skill-gap/{id} [get]
func (h *SkillGapHandler) Get(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	rec, err := h.useCase.Get(c.UserContext(), uid, id)
	if err != nil {
		return respondError(c, err, "failed to load analysis")
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// Delete
// @Summary Delete skill gap analysis
// @Tags    skill-gap
// @Param   id path string true "analysis id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /skill-gap/{id} [delete]
func (h *SkillGapHandler) Delete(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.useCase.Delete(c.UserContext(), uid, id); err != nil {
		return respondError(c, err, "failed to delete analysis")
	}
	return c.SendStatus(http.StatusNoContent)
}
