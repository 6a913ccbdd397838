// Package stats is the workout aggregation engine: pure transformations
// over already-fetched WorkoutDay graphs. Functions here never fail and
// perform no I/O; empty input produces empty or zero results.
package stats

import (
	"sort"
	"time"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// DaySummary is a per-workout-day rollup of tonnage, per-exercise best
// set and completed-set counts.
type DaySummary struct {
	Date      time.Time         `json:"date"`
	Tonnage   float64           `json:"tonnage"`
	Exercises []ExerciseSummary `json:"exercises"`
}

// ExerciseSummary summarizes the completed sets of one exercise within
// a day.
type ExerciseSummary struct {
	ExerciseID    string             `json:"exerciseId"`
	ExerciseName  string             `json:"exerciseName"`
	SetsCompleted int                `json:"setsCompleted"`
	BestSet       models.ExerciseSet `json:"bestSet"`
}

// WeekCompletion is one entry of the weekly trend series.
type WeekCompletion struct {
	WeekStartLabel string `json:"weekStartLabel"`
	CompletedCount int    `json:"completedCount"`
}

// Tonnage returns the total weight-times-reps across completed sets of
// the day. Incomplete sets contribute zero.
func Tonnage(day models.WorkoutDay) float64 {
	var total float64
	for _, de := range day.DailyExercises {
		for _, set := range de.Sets {
			if set.Completed {
				total += set.Volume()
			}
		}
	}
	return total
}

// SummarizeDay rolls up a workout day. Days with zero tonnage produce
// no summary (nil): recorded days without completed lifting are
// excluded from summary views. Daily exercises with no completed sets
// are likewise excluded from the exercise list.
func SummarizeDay(day models.WorkoutDay) *DaySummary {
	tonnage := Tonnage(day)
	if tonnage == 0 {
		return nil
	}

	summary := &DaySummary{
		Date:    day.Date,
		Tonnage: tonnage,
	}
	for _, de := range day.DailyExercises {
		var (
			completed int
			best      models.ExerciseSet
			haveBest  bool
		)
		for _, set := range de.Sets {
			if !set.Completed {
				continue
			}
			completed++
			// Ties keep the first encountered set, in set order.
			if !haveBest || set.Volume() > best.Volume() {
				best = set
				haveBest = true
			}
		}
		if completed == 0 {
			continue
		}

		es := ExerciseSummary{
			ExerciseID:    de.ExerciseID,
			SetsCompleted: completed,
			BestSet:       best,
		}
		if de.Exercise != nil {
			es.ExerciseName = de.Exercise.Name
		}
		summary.Exercises = append(summary.Exercises, es)
	}
	return summary
}

// WeekStart returns the Monday on or before t, truncated to a date.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyCompletion buckets workout days into numOfWeeks Monday-anchored
// week windows ending at the week containing now, most recent first.
// A day counts toward its window when its tonnage is positive, the same
// rule SummarizeDay applies. Weeks with no qualifying days still appear
// with a zero count, so the result always has exactly numOfWeeks
// entries and can be charted without post-processing.
func WeeklyCompletion(days []models.WorkoutDay, numOfWeeks int, now time.Time) []WeekCompletion {
	if numOfWeeks <= 0 {
		return []WeekCompletion{}
	}

	// Window math happens on calendar dates in UTC, matching the
	// date-only representation of WorkoutDay.Date.
	currentWeekStart := WeekStart(dateOnly(now))
	weeks := make([]WeekCompletion, 0, numOfWeeks)
	for i := 0; i < numOfWeeks; i++ {
		start := currentWeekStart.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)

		count := 0
		for _, day := range days {
			d := dateOnly(day.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
			if Tonnage(day) > 0 {
				count++
			}
		}

		weeks = append(weeks, WeekCompletion{
			WeekStartLabel: start.Format("1/2"),
			CompletedCount: count,
		})
	}
	return weeks
}

// EarliestWeekStart returns the start of the oldest window that
// WeeklyCompletion would build for numOfWeeks, used by callers to
// pre-filter the days they fetch.
func EarliestWeekStart(numOfWeeks int, now time.Time) time.Time {
	if numOfWeeks < 1 {
		numOfWeeks = 1
	}
	return WeekStart(dateOnly(now)).AddDate(0, 0, -7*(numOfWeeks-1))
}

// AllUniqueExercises collects each distinct exercise referenced by the
// given workout days exactly once, in order of first encounter. It
// answers "exercises actually logged", as opposed to the full per-user
// exercise catalog.
func AllUniqueExercises(days []models.WorkoutDay) []models.Exercise {
	seen := make(map[string]struct{})
	var out []models.Exercise
	for _, day := range days {
		for _, de := range day.DailyExercises {
			if de.Exercise == nil {
				continue
			}
			if _, ok := seen[de.Exercise.ID]; ok {
				continue
			}
			seen[de.Exercise.ID] = struct{}{}
			out = append(out, *de.Exercise)
		}
	}
	return out
}

// LatestCompletedSets picks, among the daily-exercise history of one
// exercise, the entry whose most recent completed-and-timestamped set
// is latest, and returns that entry's completed sets ordered by
// SetNumber ascending (nil treated as 0). It powers "what did I last
// lift for this exercise". Returns nil when no entry has a
// completed-and-timestamped set.
func LatestCompletedSets(history []models.DailyExercise) []models.ExerciseSet {
	var (
		bestTime time.Time
		bestSets []models.ExerciseSet
	)
	for _, de := range history {
		var latest time.Time
		for _, set := range de.Sets {
			if set.Completed && set.CompletedAt != nil && set.CompletedAt.After(latest) {
				latest = *set.CompletedAt
			}
		}
		if latest.IsZero() || !latest.After(bestTime) {
			continue
		}
		bestTime = latest

		sets := make([]models.ExerciseSet, 0, len(de.Sets))
		for _, set := range de.Sets {
			if set.Completed {
				sets = append(sets, set)
			}
		}
		sort.SliceStable(sets, func(i, j int) bool {
			return setNumber(sets[i]) < setNumber(sets[j])
		})
		bestSets = sets
	}
	return bestSets
}

func setNumber(s models.ExerciseSet) int {
	if s.SetNumber == nil {
		return 0
	}
	return *s.SetNumber
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
