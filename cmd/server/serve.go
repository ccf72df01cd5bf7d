package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/artem13815/skillsync/api/http"
	"github.com/artem13815/skillsync/api/http/handlers"
	_ "github.com/artem13815/skillsync/docs"
	"github.com/artem13815/skillsync/pkg/auth"
	"github.com/artem13815/skillsync/pkg/config"
	"github.com/artem13815/skillsync/pkg/health"
	healthcheckers "github.com/artem13815/skillsync/pkg/health/checkers"
	"github.com/artem13815/skillsync/pkg/jobsource"
	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/llm/gemini"
	"github.com/artem13815/skillsync/pkg/llm/openrouter"
	pgrepo "github.com/artem13815/skillsync/pkg/repository/postgres"
	"github.com/artem13815/skillsync/pkg/resume"
	"github.com/artem13815/skillsync/pkg/roleprofile"
	"github.com/artem13815/skillsync/pkg/security/jwt"
	"github.com/artem13815/skillsync/pkg/skillgap"
	"github.com/artem13815/skillsync/pkg/storage/postgres"
)

var (
	flagSkipMigrations bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&flagSkipMigrations, "skip-migrations", false, "do not apply migrations on start")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer pool.Close()

	if !flagSkipMigrations {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("database schema is up to date", zap.Int("applied", len(applied)))
	}

	checkers := []health.Checker{healthcheckers.NewPostgresChecker(pool)}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	if ch, ok := provider.(health.Checker); ok {
		checkers = append(checkers, ch)
	}
	ai := llm.WithLogging(
		llm.WithMetrics(
			llm.WithBreaker(provider, llm.BreakerSettings{
				Enabled:      cfg.AIBreakerEnabled,
				MaxRequests:  cfg.AIBreakerMaxReqs,
				Interval:     cfg.AIBreakerInterval,
				Timeout:      cfg.AIBreakerTimeout,
				MinRequests:  cfg.AIBreakerMinReqs,
				FailureRatio: cfg.AIBreakerFailRatio,
			}, log),
		),
		log.Named("llm"),
	)

	jobs := jobsource.New(cfg.JobBoardURL, cfg.JobFetchLimit, cfg.JobBoardTimeout, log.Named("jobsource"))
	checkers = append(checkers, healthcheckers.NewHTTPChecker("job_board", cfg.JobBoardURL))

	// Repositories
	userRepo := pgrepo.NewUserRepository(pool)
	resumeRepo := pgrepo.NewResumeRepository(pool)
	profileRepo := pgrepo.NewRoleProfileRepository(pool)
	skillGapRepo := pgrepo.NewSkillGapRepository(pool)

	// Use cases
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	authUC := auth.NewAuthService(userRepo, jwtGen)
	profiles := roleprofile.NewService(profileRepo, jobs, ai,
		roleprofile.WithTTL(cfg.RoleCacheTTL),
		roleprofile.WithGenerationTimeout(cfg.GenerationTimeout),
		roleprofile.WithLogger(log.Named("roleprofile")),
	)
	resumeUC := resume.NewService(resumeRepo, cfg.UploadMaxBytes, log.Named("resume"))
	optimizer := resume.NewOptimizer(ai, resumeRepo, profiles, log.Named("optimizer"))
	skillGapUC := skillgap.NewService(skillGapRepo, resumeRepo, profiles,
		skillgap.NewAnalyzer(ai, log.Named("skillgap")), log.Named("skillgap"))

	server := fiber.New(fiber.Config{
		AppName:      app,
		BodyLimit:    int(cfg.UploadMaxBytes) + 1<<20,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
	})
	httpapi.Register(server, httpapi.Handlers{
		Auth:     handlers.NewAuthHandler(authUC),
		Health:   handlers.NewHealthHandler(health.NewService(checkers...)),
		Resumes:  handlers.NewResumesHandler(resumeUC, optimizer, cfg.UploadMaxBytes),
		Roles:    handlers.NewRolesHandler(profiles),
		SkillGap: handlers.NewSkillGapHandler(skillGapUC),
	}, jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), httpapi.Options{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log.Named("http"),
		Swagger:     true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.Port), zap.String("llm_provider", cfg.LLMProvider))
		errCh <- server.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

func newProvider(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		return openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBase,
			cfg.OpenRouterModel,
			cfg.OpenRouterAppTitle,
			cfg.OpenRouterReferer,
		), nil
	default:
		c, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	}
}
