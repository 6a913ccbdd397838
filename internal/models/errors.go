package models

import "errors"

// Tagged failures surfaced by services and mapped by the HTTP boundary
// to status codes. Not-found covers both absent entities and entities
// owned by another user, so callers cannot probe for other users' data.
var (
	ErrUserExists       = errors.New("user already exists")
	ErrEmailExists      = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWorkoutDayExists = errors.New("workout day already exists for this date")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrTemplateNotFound = errors.New("template not found")
)
