// Package migration imports a legacy Firebase export into Postgres.
//
// The export is a JSON document with three collections: "user",
// "userExercises" and "dailyExerciseEntries". The job is idempotent
// and may be re-run over the same export; existing rows are refreshed
// rather than duplicated.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// legacyDateFormat matches dates like "January 02, 2006" found in the
// Firebase export.
const legacyDateFormat = "January 02, 2006"

// Export mirrors the shape of the Firebase JSON export.
type Export struct {
	Users                []LegacyUser          `json:"user"`
	UserExercises        []LegacyUserExercises `json:"userExercises"`
	DailyExerciseEntries []LegacyEntry         `json:"dailyExerciseEntries"`
}

type LegacyUser struct {
	ID      string         `json:"id"`
	Account *LegacyAccount `json:"account"`
}

type LegacyAccount struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LegacyUserExercises is keyed by user ID; Map holds the user's
// exercises keyed by an opaque slot name.
type LegacyUserExercises struct {
	ID  string                    `json:"id"`
	Map map[string]LegacyExercise `json:"map"`
}

type LegacyExercise struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExerciseType     string `json:"exerciseType"`
	ExerciseBodyPart string `json:"exerciseBodyPart"`
}

type LegacyEntry struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	Date           string                `json:"date"`
	DailyExercises []LegacyDailyExercise `json:"dailyExercises"`
}

type LegacyDailyExercise struct {
	ID       string         `json:"id"`
	Exercise LegacyExercise `json:"exercise"`
	Sets     []LegacySet    `json:"sets"`
}

type LegacySet struct {
	ID        string  `json:"id"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// Report summarizes an import run. Per-entry failures are collected in
// Errors and do not abort the run.
type Report struct {
	UsersProcessed     int
	ExercisesProcessed int
	WorkoutsProcessed  int
	Errors             []string
}

// UserUpserter persists users from the export.
type UserUpserter interface {
	Upsert(ctx context.Context, user models.User) error
}

// ExerciseUpserter persists exercises from the export.
type ExerciseUpserter interface {
	Upsert(ctx context.Context, exercise models.Exercise) error
}

// WorkoutUpserter persists workout days from the export.
type WorkoutUpserter interface {
	Upsert(ctx context.Context, day models.WorkoutDay) error
}

// Importer runs the legacy import.
type Importer struct {
	users     UserUpserter
	exercises ExerciseUpserter
	workouts  WorkoutUpserter
	log       *zap.Logger
}

func NewImporter(users UserUpserter, exercises ExerciseUpserter, workouts WorkoutUpserter, log *zap.Logger) *Importer {
	return &Importer{users: users, exercises: exercises, workouts: workouts, log: log}
}

// LoadExport reads and decodes a Firebase export file.
func LoadExport(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &export, nil
}

// Run imports the export. Users without an email and entries without a
// date are skipped. The returned Report is non-nil even when some
// entries failed.
func (i *Importer) Run(ctx context.Context, export *Export) *Report {
	report := &Report{}

	exercisesByUser := make(map[string]LegacyUserExercises, len(export.UserExercises))
	for _, ue := range export.UserExercises {
		exercisesByUser[ue.ID] = ue
	}

	for _, user := range export.Users {
		if user.Account == nil || user.Account.Email == "" {
			continue
		}
		if err := i.importUser(ctx, user, exercisesByUser[user.ID], report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("error processing user %s: %v", user.ID, err))
		}
	}

	for _, entry := range export.DailyExerciseEntries {
		if entry.Date == "" {
			continue
		}
		if err := i.importEntry(ctx, entry); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("error processing workout %s: %v", entry.ID, err))
			continue
		}
		report.WorkoutsProcessed++
	}

	i.log.Info("import finished",
		zap.Int("usersProcessed", report.UsersProcessed),
		zap.Int("exercisesProcessed", report.ExercisesProcessed),
		zap.Int("workoutsProcessed", report.WorkoutsProcessed),
		zap.Int("errors", len(report.Errors)),
	)
	return report
}

func (i *Importer) importUser(ctx context.Context, user LegacyUser, exercises LegacyUserExercises, report *Report) error {
	first, last := splitName(user.Account.Name)
	if err := i.users.Upsert(ctx, models.User{
		ID:        user.ID,
		Email:     user.Account.Email,
		FirstName: first,
		LastName:  last,
	}); err != nil {
		return err
	}
	report.UsersProcessed++

	for _, exercise := range exercises.Map {
		if err := i.exercises.Upsert(ctx, models.Exercise{
			ID:               exercise.ID,
			UserID:           user.ID,
			Name:             exercise.Name,
			ExerciseType:     exercise.ExerciseType,
			ExerciseBodyPart: exercise.ExerciseBodyPart,
		}); err != nil {
			return err
		}
		report.ExercisesProcessed++
	}
	return nil
}

func (i *Importer) importEntry(ctx context.Context, entry LegacyEntry) error {
	date, err := time.Parse(legacyDateFormat, entry.Date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", entry.Date, err)
	}

	day := models.WorkoutDay{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Date:      date,
		HasSynced: true,
	}
	for pos, de := range entry.DailyExercises {
		daily := models.DailyExercise{
			ID:           de.ID,
			WorkoutDayID: entry.ID,
			ExerciseID:   de.Exercise.ID,
			Order:        pos,
		}
		for _, set := range de.Sets {
			daily.Sets = append(daily.Sets, models.ExerciseSet{
				ID:        set.ID,
				Reps:      set.Reps,
				Weight:    set.Weight,
				Completed: set.Completed,
			})
		}
		day.DailyExercises = append(day.DailyExercises, daily)
	}

	return i.workouts.Upsert(ctx, day)
}

// splitName splits a display name into first and last; everything after
// the first space belongs to the last name.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
