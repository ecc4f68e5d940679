package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/config"
	"github.com/examgen/examgen-backend/internal/handler"
	"github.com/examgen/examgen-backend/internal/middleware"
	"github.com/examgen/examgen-backend/internal/ratelimit"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Class        *handler.ClassHandler
	Session      *handler.SessionHandler
	Subject      *handler.SubjectHandler
	Exam         *handler.ExamHandler
	QuestionBank *handler.QuestionBankHandler
	Stats        *handler.StatsHandler
	Ingest       *handler.IngestHandler
	TeacherAI    *handler.TeacherAIHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.TokenValidator,
	handlers *Handlers,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// Multipart bodies beyond this spill to temp files.
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/google", handlers.Auth.GoogleLogin)
	}

	// Landing page counters.
	router.GET("/api/stats", handlers.Stats.GetStats)

	// ─── 2. API Group (JWT) ────────────────────────────────────────────
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(auth))
	admin := middleware.RequireAdmin()

	// Users
	users := api.Group("/users", admin)
	{
		users.GET("", handlers.User.ListUsers)
		users.DELETE("/:id", handlers.User.DeleteUser)
		users.PUT("/:id/password", handlers.User.UpdatePassword)
	}

	// Classes
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.GET("/:id", handlers.Class.GetClass)
		classes.GET("/:id/sessions", handlers.Session.ListByClass)
		classes.GET("/:id/exams", handlers.Exam.ListByClass)
		classes.POST("", admin, handlers.Class.CreateClass)
		classes.PUT("/:id", admin, handlers.Class.UpdateClass)
		classes.DELETE("/:id", admin, handlers.Class.DeleteClass)
	}

	// Sessions
	sessions := api.Group("/sessions")
	{
		sessions.GET("/:id", handlers.Session.Get)
		sessions.GET("/:id/subjects", handlers.Subject.ListBySession)
		sessions.POST("", admin, handlers.Session.Create)
		sessions.PUT("/:id", admin, handlers.Session.Update)
		sessions.DELETE("/:id", admin, handlers.Session.Delete)
	}

	// Subjects
	subjects := api.Group("/subjects")
	{
		subjects.GET("/:id", handlers.Subject.Get)
		subjects.POST("", admin, handlers.Subject.Create)
		subjects.PUT("/:id", admin, handlers.Subject.Update)
		subjects.DELETE("/:id", admin, handlers.Subject.Delete)
	}

	// Exams and their questions. Editing an exam header is checked in the handler.
	exams := api.Group("/exams")
	{
		exams.POST("", handlers.Exam.CreateExam)
		exams.GET("/:id", handlers.Exam.GetExam)
		exams.PUT("/:id", handlers.Exam.UpdateExam)
		exams.DELETE("/:id", handlers.Exam.DeleteExam)
	}
	api.POST("/questions", handlers.Exam.AddQuestion)
	api.DELETE("/questions/:id", handlers.Exam.DeleteQuestion)

	// Question bank
	bank := api.Group("/question-bank")
	{
		bank.GET("", handlers.QuestionBank.List)
		bank.GET("/:id", handlers.QuestionBank.Get)
		bank.POST("", admin, handlers.QuestionBank.Create)
		bank.PUT("/:id", admin, handlers.QuestionBank.Update)
		bank.DELETE("/:id", admin, handlers.QuestionBank.Delete)
	}

	// ─── 3. Document Ingestion (Admin) ─────────────────────────────────
	ingest := api.Group("/admin", admin)
	{
		ingest.POST("/upload", handlers.Ingest.Upload)
		ingest.POST("/save", handlers.Ingest.Save)
	}

	// ─── 4. Free-form Generation (Daily Limit) ─────────────────────────
	api.POST("/ai/teacher-generate", middleware.DailyAILimit(limiter, log), handlers.TeacherAI.Generate)

	return router
}
