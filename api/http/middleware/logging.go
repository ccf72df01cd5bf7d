package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/api/http/presenter"
)

// LocalsRequestID is where the requestid middleware leaves the id.
const LocalsRequestID = "requestid"

// RequestLogger writes one log line per request. It expects the requestid
// middleware to run first. 5xx responses are logged at error level together
// with the error a handler left in c.Locals.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(LocalsRequestID).(string)

		chainErr := c.Next()
		if chainErr != nil {
			// Let the app error handler write the response before we read the status.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if uid, ok := c.Locals("userId").(string); ok {
			fields = append(fields, zap.String("user_id", uid))
		}
		if err, ok := c.Locals(presenter.LocalsError).(error); ok {
			fields = append(fields, zap.Error(err))
		} else if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request failed", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}
