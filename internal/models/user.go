// Package models defines the core data structures for users, exercises,
// templates and logged workouts.
package models

// User represents an application user. The ID is the stable identifier
// issued by the external identity provider and never changes.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is unique across all users.
	Email string `json:"email"`
	// FirstName is optional.
	FirstName string `json:"firstName,omitempty"`
	// LastName is optional.
	LastName string `json:"lastName,omitempty"`
}
