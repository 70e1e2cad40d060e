package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/app"
	"github.com/Freeeeeet/tutor_crm/internal/config"
	httpcontroller "github.com/Freeeeeet/tutor_crm/internal/controller/http"
	"github.com/Freeeeeet/tutor_crm/internal/openai"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"github.com/Freeeeeet/tutor_crm/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor CRM server",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// Клиент генератора предложений
	openaiClient := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		APIURL:  cfg.OpenAIAPIURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}, logger)

	// Сервисы
	studentService := service.NewStudentService(studentRepo, logger)
	teacherService := service.NewTeacherService(teacherRepo, logger)
	courseService := service.NewCourseService(courseRepo, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, teacherRepo, courseRepo, logger)
	availabilityService := service.NewAvailabilityService(availabilityRepo, studentRepo, teacherRepo, logger)
	lessonService := service.NewLessonService(pool, lessonRepo, enrollmentRepo, logger)
	schedulingService := service.NewSchedulingService(
		availabilityRepo,
		enrollmentRepo,
		lessonRepo,
		lessonService,
		openaiClient,
		logger,
	)
	reportService := service.NewReportService(reportRepo, logger)

	handler := httpcontroller.NewHandler(
		studentService,
		teacherService,
		courseService,
		enrollmentService,
		lessonService,
		availabilityService,
		schedulingService,
		reportService,
		logger,
	)
	router := httpcontroller.NewRouter(handler, cfg.Environment)

	// Фоновая задача разметки просроченных занятий
	scheduler := app.NewScheduler(lessonRepo, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
