// Package main runs the one-shot legacy import: it reads a Firebase
// JSON export and upserts its users, exercises and workout days into
// Postgres.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/Kennygunderman/state-of-health-be/internal/config"
	"github.com/Kennygunderman/state-of-health-be/internal/db"
	"github.com/Kennygunderman/state-of-health-be/internal/logger"
	"github.com/Kennygunderman/state-of-health-be/internal/migration"
	"github.com/Kennygunderman/state-of-health-be/internal/repository"
)

func main() {
	exportPath := flag.String("export", "export.json", "path to the Firebase JSON export")
	options := config.Parse()

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	export, err := migration.LoadExport(*exportPath)
	if err != nil {
		zapLogger.Fatal("cannot load export", zap.Error(err))
	}

	importer := migration.NewImporter(
		repository.NewPostgresUserRepository(postgresDB),
		repository.NewPostgresExerciseRepository(postgresDB),
		repository.NewPostgresWorkoutRepository(postgresDB),
		zapLogger,
	)

	report := importer.Run(context.Background(), export)
	for _, msg := range report.Errors {
		zapLogger.Error("import entry failed", zap.String("detail", msg))
	}
	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}
