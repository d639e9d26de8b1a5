// Package service holds the business operations behind the HTTP routes.
// It is the only layer that talks to storage.Storage.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/storage"
	"github.com/aanand-mishra/skillbridge/internal/types"
)

// Errors returned by StudentService. They alias the storage sentinels so
// handlers need to import only this package.
var (
	ErrStudentNotFound = storage.ErrStudentNotFound
	ErrStudentExists   = storage.ErrStudentExists
)

// StudentService implements the student operations on top of a Storage.
type StudentService struct {
	storage storage.Storage
}

// NewStudentService returns a StudentService backed by s.
func NewStudentService(s storage.Storage) *StudentService {
	return &StudentService{storage: s}
}

// GetAllStudents returns every student.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]types.Student, error) {
	students, err := s.storage.GetStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all students: %w", err)
	}

	logger.FromContext(ctx).Debug().Int("count", len(students)).Msg("students listed")
	return students, nil
}

// GetStudentByID returns the student with id or ErrStudentNotFound.
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	student, err := s.storage.GetStudentByID(ctx, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return student, nil
}

// StudentExists reports whether a student named name is stored.
func (s *StudentService) StudentExists(ctx context.Context, name string) (bool, error) {
	_, err := s.storage.GetStudentByName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrStudentNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check student exists: %w", err)
	}
}

// AddNewStudent stores a student named name and returns the stored
// record, id included. A concurrent insert of the same name yields
// ErrStudentExists.
func (s *StudentService) AddNewStudent(ctx context.Context, name string) (types.Student, error) {
	id, err := s.storage.CreateStudent(ctx, name)
	if err != nil {
		return types.Student{}, fmt.Errorf("add student: %w", err)
	}

	student, err := s.storage.GetStudentByID(ctx, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("add student: reload %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("student created")
	return student, nil
}

// UpdateStudent persists student.Name for student.ID and returns the
// stored record.
func (s *StudentService) UpdateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	updated, err := s.storage.UpdateStudentByID(ctx, student.ID, student)
	if err != nil {
		return types.Student{}, fmt.Errorf("update student %d: %w", student.ID, err)
	}

	logger.FromContext(ctx).Info().Int64("id", updated.ID).Msg("student updated")
	return updated, nil
}

// DeleteStudent removes the student with id.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.storage.DeleteStudentByID(ctx, id); err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("student deleted")
	return nil
}
