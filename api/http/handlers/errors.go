package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/skillsync/api/http/presenter"
	"github.com/artem13815/skillsync/pkg/resume"
	"github.com/artem13815/skillsync/pkg/roleprofile"
	"github.com/artem13815/skillsync/pkg/skillgap"
)

// respondError maps domain errors onto HTTP statuses. Unknown errors become
// 500 with the given fallback message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, resume.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	case errors.Is(err, skillgap.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "analysis not found")
	case errors.Is(err, resume.ErrTooLarge):
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, resume.ErrUnsupportedFormat),
		errors.Is(err, resume.ErrNoText),
		errors.Is(err, roleprofile.ErrInvalidRole),
		errors.Is(err, skillgap.ErrInvalidPreference):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, roleprofile.ErrNoPostings):
		c.Locals(presenter.LocalsError, err)
		return presenter.Error(c, http.StatusServiceUnavailable,
			"no job postings found for this role, try a broader role name")
	case errors.Is(err, roleprofile.ErrGenerationFailed):
		c.Locals(presenter.LocalsError, err)
		return presenter.Error(c, http.StatusServiceUnavailable,
			"could not build the role profile from the AI response, please retry later")
	case errors.Is(err, skillgap.ErrAnalysisFailed):
		c.Locals(presenter.LocalsError, err)
		return presenter.Error(c, http.StatusServiceUnavailable,
			"the AI could not produce a valid skill gap analysis, please retry later")
	default:
		return presenter.Internal(c, err, fallback)
	}
}

// ownerID reads the authenticated user id set by the JWT middleware.
func ownerID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func unauthorized(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
}
