package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/skillbridge/internal/config"
	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/storage"
	"github.com/aanand-mishra/skillbridge/internal/types"
)

func newTestStorage(t *testing.T) *SQLite {
	t.Helper()

	cfg := config.Storage{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "students.db"),
	}
	s, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestCreateAndGetStudent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: id, Name: "Ada"}, got)

	byName, err := s.GetStudentByName(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, got, byName)
}

func TestCreateStudent_Duplicate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)

	_, err = s.CreateStudent(ctx, "Ada")
	assert.ErrorIs(t, err, storage.ErrStudentExists)
}

func TestGetStudent_NotFound(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetStudentByID(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	_, err = s.GetStudentByName(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestGetStudents(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	empty, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	idA, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)
	idB, err := s.CreateStudent(ctx, "Linus")
	require.NoError(t, err)

	all, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{ID: idA, Name: "Ada"}, {ID: idB, Name: "Linus"}}, all)
}

func TestUpdateStudentByID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)

	updated, err := s.UpdateStudentByID(ctx, id, types.Student{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: id, Name: "Ada Lovelace"}, updated)

	_, err = s.UpdateStudentByID(ctx, id+100, types.Student{Name: "ghost"})
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestUpdateStudentByID_NameTaken(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)
	id, err := s.CreateStudent(ctx, "Linus")
	require.NoError(t, err)

	_, err = s.UpdateStudentByID(ctx, id, types.Student{Name: "Ada"})
	assert.ErrorIs(t, err, storage.ErrStudentExists)
}

func TestDeleteStudentByID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.CreateStudent(ctx, "Ada")
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudentByID(ctx, id))

	_, err = s.GetStudentByID(ctx, id)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	assert.ErrorIs(t, s.DeleteStudentByID(ctx, id), storage.ErrStudentNotFound)
}

func TestPing(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Ping(context.Background()))
}
