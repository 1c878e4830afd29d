package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/database"
	"github.com/lanexam/lanexam-backend/internal/handler"
	"github.com/lanexam/lanexam-backend/internal/llm"
	"github.com/lanexam/lanexam-backend/internal/logger"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/lanexam/lanexam-backend/internal/router"
	"github.com/lanexam/lanexam-backend/internal/service"
	"github.com/lanexam/lanexam-backend/internal/validator"
	"github.com/lanexam/lanexam-backend/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LanExam Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	llmClient := llm.New(cfg.OllamaBaseURL, cfg.OllamaModel)

	authService := service.NewAuthService(cfg, userRepo, sessionRepo, rdb, log)
	userService := service.NewUserService(userRepo, authService, log)
	examService := service.NewExamService(examRepo, rdb, log)
	submissionService := service.NewSubmissionService(submissionRepo, examRepo, log)
	generationService := service.NewGenerationService(llmClient, log)
	executionService := service.NewExecutionService(cfg, log)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		Exam:       handler.NewExamHandler(examService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Student:    handler.NewStudentHandler(userService),
		AI:         handler.NewAIHandler(generationService),
		Code:       handler.NewCodeHandler(executionService),
		Presence:   handler.NewPresenceHandler(cfg, rdb, log),
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	sweeper := worker.NewSessionSweeper(sessionRepo, 5*time.Minute, log)
	go sweeper.Start(workerCtx)

	r := router.Setup(cfg, authService, handlers)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
