package models

import "time"

// DateFormat is the wire format for calendar dates. Workout days are
// keyed by calendar date only; time of day is not modeled.
const DateFormat = "2006-01-02"

// Exercise is a user-defined exercise. Exercises are exclusively owned
// by one user and soft-deleted: a deleted exercise disappears from
// listings but must still resolve by id from historical workouts.
type Exercise struct {
	ID               string     `json:"id"`
	UserID           string     `json:"-"`
	Name             string     `json:"name"`
	ExerciseType     string     `json:"exerciseType"`
	ExerciseBodyPart string     `json:"exerciseBodyPart"`
	DeletedAt        *time.Time `json:"-"`
}

// Deleted reports whether the exercise has been soft-deleted.
func (e Exercise) Deleted() bool {
	return e.DeletedAt != nil
}

// Template is a named, reusable ordered list of exercise references.
// The references are weak: an exercise may appear in any number of
// templates, and deleting an exercise removes its id from every
// template that references it.
type Template struct {
	ID          string   `json:"id"`
	UserID      string   `json:"-"`
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// WorkoutDay is a user's logged session for a single calendar date.
// At most one WorkoutDay exists per (UserID, Date) pair. It exclusively
// owns its DailyExercises: replacing the list on update discards all
// prior children.
type WorkoutDay struct {
	ID     string    `json:"id"`
	UserID string    `json:"-"`
	Date   time.Time `json:"date"`
	// UpdatedAt is a monotonic version counter supplied by the caller,
	// advisory only: concurrent updates are last-write-wins.
	UpdatedAt int64 `json:"updatedAt"`
	// HasSynced marks days created by the legacy import job.
	HasSynced      bool            `json:"-"`
	DailyExercises []DailyExercise `json:"dailyExercises"`
}

// DailyExercise is one exercise instance within a WorkoutDay. It
// references exactly one Exercise and owns its ordered set list.
type DailyExercise struct {
	ID           string `json:"dailyExerciseId"`
	WorkoutDayID string `json:"-"`
	ExerciseID   string `json:"-"`
	// Order defines iteration order within the day, ties broken by
	// insertion.
	Order int `json:"-"`
	// Exercise is the referenced exercise, resolved by id at fetch
	// time. Resolution ignores soft-delete so historical workouts keep
	// displaying deleted exercises.
	Exercise *Exercise     `json:"exercise,omitempty"`
	Sets     []ExerciseSet `json:"sets"`
}

// ExerciseSet is a single set within a DailyExercise.
type ExerciseSet struct {
	ID        string  `json:"id"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
	// SetNumber is an optional intra-exercise ordering hint.
	SetNumber *int `json:"setNumber,omitempty"`
	// CompletedAt is present only when Completed is true.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Volume returns the weight-times-reps contribution of the set.
func (s ExerciseSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}
