package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/metrics"
)

const previewLimit = 200

// WithMetrics records call counts and latency per operation.
func WithMetrics(next Generator) Generator {
	return GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		start := time.Now()
		out, err := next.Generate(ctx, req)
		metrics.AIRequestDuration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())
		metrics.AIRequests.WithLabelValues(req.Operation, outcome(err)).Inc()
		return out, err
	})
}

// WithLogging logs every call; responses are previewed at debug level only.
func WithLogging(next Generator, log *zap.Logger) Generator {
	log = logger.OrNop(log)
	return GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		start := time.Now()
		out, err := next.Generate(ctx, req)
		fields := []zap.Field{
			zap.String("operation", req.Operation),
			zap.Stringer("mode", req.Mode),
			zap.Int("prompt_chars", len(req.Prompt)),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Warn("ai generation failed", append(fields, zap.Error(err))...)
			return "", err
		}
		log.Debug("ai generation completed", append(fields,
			zap.Int("response_chars", len(out)),
			zap.String("response_preview", logger.TruncateForLog(out, previewLimit)))...)
		return out, nil
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
