package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/api/http/handlers"
	"github.com/artem13815/skillsync/api/http/middleware"
	"github.com/artem13815/skillsync/pkg/metrics"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Resumes  *handlers.ResumesHandler
	Roles    *handlers.RolesHandler
	SkillGap *handlers.SkillGapHandler
}

// Options configures cross-cutting middleware.
type Options struct {
	CORSOrigins string
	Logger      *zap.Logger
	Swagger     bool
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler, opts Options) {
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.Logger != nil {
		app.Use(middleware.RequestLogger(opts.Logger))
	}
	app.Use(middleware.Metrics())
	origins := normalizeOrigins(opts.CORSOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		// cors refuses credentials together with a wildcard origin.
		AllowCredentials: origins != "*",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	rs := v1.Group("/resumes", authMW)
	rs.Post("/", h.Resumes.Upload)
	rs.Get("/", h.Resumes.List)
	rs.Get("/:id", h.Resumes.Get)
	rs.Delete("/:id", h.Resumes.Delete)
	rs.Post("/:id/optimize", h.Resumes.Optimize)

	v1.Post("/roles/analyze", authMW, h.Roles.Analyze)

	sg := v1.Group("/skill-gap", authMW)
	sg.Post("/analyze", h.SkillGap.Analyze)
	sg.Get("/", h.SkillGap.List)
	sg.Get("/:id", h.SkillGap.Get)
	sg.Delete("/:id", h.SkillGap.Delete)
}

// normalizeOrigins turns "a, b" into the comma list cors expects.
func normalizeOrigins(s string) string {
	if strings.TrimSpace(s) == "" {
		return "*"
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
