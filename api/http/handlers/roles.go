package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/skillsync/api/http/presenter"
	"github.com/artem13815/skillsync/pkg/roleprofile"
)

type RolesHandler struct {
	profiles roleprofile.UseCase
}

func NewRolesHandler(profiles roleprofile.UseCase) *RolesHandler {
	return &RolesHandler{profiles: profiles}
}

// Analyze returns the cached ideal profile for a role, building it from
// live job postings when the cache has nothing fresh.
// @Summary Ideal candidate profile for a role
// @Tags    roles
// @Accept  json
// @Produce json
// @Param   input body roleRequest true "target role"
// @Security BearerAuth
// @Success 200 {object} roleprofile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /roles/analyze [post]
func (h *RolesHandler) Analyze(c *fiber.Ctx) error {
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.RoleName) == "" {
		return presenter.Error(c, http.StatusBadRequest, "role_name is required")
	}
	p, err := h.profiles.GetOrCreate(c.UserContext(), req.RoleName)
	if err != nil {
		return respondError(c, err, "failed to analyze role")
	}
	return presenter.JSON(c, http.StatusOK, p)
}
