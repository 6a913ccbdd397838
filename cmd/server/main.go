// Package main initializes and starts the workout tracking API server,
// setting up configuration, logging, the database connection,
// repositories, services and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"log"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/Kennygunderman/state-of-health-be/internal/auth"
	"github.com/Kennygunderman/state-of-health-be/internal/config"
	"github.com/Kennygunderman/state-of-health-be/internal/db"
	"github.com/Kennygunderman/state-of-health-be/internal/logger"
	"github.com/Kennygunderman/state-of-health-be/internal/middleware"
	"github.com/Kennygunderman/state-of-health-be/internal/repository"
	"github.com/Kennygunderman/state-of-health-be/internal/server/handler/http"
	"github.com/Kennygunderman/state-of-health-be/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	exerciseRepo := repository.NewPostgresExerciseRepository(postgresDB)
	templateRepo := repository.NewPostgresTemplateRepository(postgresDB)
	workoutRepo := repository.NewPostgresWorkoutRepository(postgresDB)

	userService := service.NewUserService(userRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, templateRepo, workoutRepo)

	userHandler := &http.UserHandler{UserService: userService}
	workoutHandler := &http.WorkoutHandler{WorkoutService: workoutService}
	exerciseHandler := &http.ExerciseHandler{ExerciseService: exerciseService}

	authMiddleware := middleware.HeaderAuth
	if !options.AuthDisabled {
		verifier, err := auth.NewOIDCVerifier(context.Background(), options.OIDCIssuer, options.OIDCClientID)
		if err != nil {
			zapLogger.Fatal("cannot init token verifier", zap.Error(err))
		}
		authMiddleware = middleware.BearerAuth(verifier)
	} else {
		zapLogger.Warn("token verification disabled, trusting X-User-Id header")
	}

	router := http.NewRouter(userHandler, workoutHandler, exerciseHandler, authMiddleware, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
