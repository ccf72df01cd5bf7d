package presenter

import "github.com/gofiber/fiber/v2"

// LocalsError is the c.Locals key under which handlers leave an internal
// error for the request logger.
const LocalsError = "error"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Internal responds with a generic message and keeps err for logging.
func Internal(c *fiber.Ctx, err error, message string) error {
	c.Locals(LocalsError, err)
	return Error(c, fiber.StatusInternalServerError, message)
}
