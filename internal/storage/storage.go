// Package storage defines the Storage interface: the contract any
// database backend must satisfy to serve the student service.
//
// Handlers and the service only see this interface, so the backend
// (SQLite or PostgreSQL) is picked once in main.go and tests can pass a
// mock in its place.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/skillbridge/internal/types"
)

//go:generate mockgen -source=storage.go -destination=../mock/storage_mock.go -package=mock

// Sentinel errors returned by every backend. Callers match them with
// errors.Is.
var (
	// ErrStudentNotFound is returned when no row matches the requested id
	// or name, or when an update/delete affects zero rows.
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentExists is returned when an insert or update violates the
	// unique constraint on students.name.
	ErrStudentExists = errors.New("student already exists")
)

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new student and returns the generated id.
	CreateStudent(ctx context.Context, name string) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudentByName fetches a single student by exact name.
	GetStudentByName(ctx context.Context, name string) (types.Student, error)

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces the name of an existing student and
	// returns the stored record.
	UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student permanently.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
