// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, service, and storage all import types without depending on
// each other.
package types

// Student represents a student record.
//
// ID is assigned by the storage backend on creation and never changes.
type Student struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StudentRequest is the body accepted by the create and update routes.
// Only the name can be set by a client.
type StudentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
