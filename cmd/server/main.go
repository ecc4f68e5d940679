package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/config"
	"github.com/examgen/examgen-backend/internal/database"
	"github.com/examgen/examgen-backend/internal/extract"
	"github.com/examgen/examgen-backend/internal/handler"
	"github.com/examgen/examgen-backend/internal/llm"
	"github.com/examgen/examgen-backend/internal/logger"
	"github.com/examgen/examgen-backend/internal/ratelimit"
	"github.com/examgen/examgen-backend/internal/repository"
	"github.com/examgen/examgen-backend/internal/router"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/storage"
	"github.com/examgen/examgen-backend/internal/validator"
	"github.com/examgen/examgen-backend/internal/worker"
)

const (
	stagingSweepInterval = 30 * time.Minute
	stagingMaxAge        = 2 * time.Hour
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("llm_provider", cfg.LLMProvider).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ExamGen Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── AI Usage Counters ─────────────────────────────────────────────
	// Redis is only needed when several instances share the daily quota.
	sched := cron.New()
	var limitStore ratelimit.Store
	if cfg.RateLimitStore == "redis" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
		limitStore = ratelimit.NewRedisStore(rdb)
	} else {
		mem := ratelimit.NewMemoryStore()
		if _, err := mem.ScheduleSweep(sched, logger.Component(log, "ratelimit")); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule usage sweep")
		}
		limitStore = mem
	}
	limiter := ratelimit.New(limitStore, cfg.AIDailyLimit)

	// ─── AI Provider ───────────────────────────────────────────────────
	gen, err := llm.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid AI provider configuration")
	}
	retrier := llm.NewRetrier(gen, log)

	// ─── Document Storage ──────────────────────────────────────────────
	stager := storage.NewStager(cfg.UploadDir, cfg.MaxUploadBytes)
	var archive service.SourceArchiver
	if a, err := storage.NewArchive(ctx, cfg, log); err != nil {
		log.Warn().Err(err).Msg("Source archive unavailable, continuing without it")
	} else if a != nil {
		archive = a
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	bankRepo := repository.NewQuestionBankRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, nil, log)
	userService := service.NewUserService(userRepo, authService, log)
	classService := service.NewClassService(classRepo)
	sessionService := service.NewSessionService(sessionRepo)
	subjectService := service.NewSubjectService(subjectRepo, log)
	examService := service.NewExamService(examRepo, questionRepo, subjectRepo, classRepo, log)
	bankService := service.NewQuestionBankService(bankRepo)
	statsService := service.NewStatsService(examRepo, userRepo)
	ingestService := service.NewIngestService(
		stager,
		extract.New(extract.DefaultPDFBackends()...),
		archive,
		retrier,
		bankRepo,
		log,
	)
	teacherAIService := service.NewTeacherAIService(gen, log)

	// ─── Bootstrap Admin ───────────────────────────────────────────────
	if cfg.AdminSeedEmail != "" && cfg.AdminSeedPassword != "" {
		if admin, err := authService.SeedAdmin(ctx, cfg.AdminSeedEmail, cfg.AdminSeedPassword); err != nil {
			log.Error().Err(err).Msg("Failed to seed admin account")
		} else {
			log.Info().Int("user_id", admin.ID).Str("username", admin.Username).Msg("Admin account ready")
		}
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Class:        handler.NewClassHandler(classService),
		Session:      handler.NewSessionHandler(sessionService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Exam:         handler.NewExamHandler(examService),
		QuestionBank: handler.NewQuestionBankHandler(bankService),
		Stats:        handler.NewStatsHandler(statsService),
		Ingest:       handler.NewIngestHandler(ingestService),
		TeacherAI:    handler.NewTeacherAIHandler(teacherAIService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	janitor := worker.NewStagingJanitor(stager, stagingSweepInterval, stagingMaxAge, log)
	go janitor.Start(workerCtx)
	sched.Start()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new requests. An upload may still be working through
	// its retries, so wait out the full retry budget.
	grace := retrier.WorstCase(cfg.LLMTimeout) + 5*time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), grace)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background jobs.
	workerCancel()
	<-sched.Stop().Done()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
