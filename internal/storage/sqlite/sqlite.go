// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface on top of database/sql.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql.
// Its Error type is used to detect unique-constraint violations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/skillbridge/internal/config"
	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/migrations"
	"github.com/aanand-mishra/skillbridge/internal/storage"
	"github.com/aanand-mishra/skillbridge/internal/types"
)

const studentsTable = "students"

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB

	builder sq.StatementBuilderType
}

// New opens the SQLite database at cfg.DSN, applies the schema
// migrations, and returns a ready-to-use *SQLite.
func New(ctx context.Context, cfg config.Storage, log *logger.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows a single writer; one connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	if err := migrations.Migrate(ctx, db, migrations.SQLite, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	log.Debug().Str("dsn", cfg.DSN).Msg("connected to sqlite")

	return &SQLite{
		Db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// CreateStudent inserts a new row and returns its auto-generated id.
func (s *SQLite) CreateStudent(ctx context.Context, name string) (int64, error) {
	query, args, err := s.builder.
		Insert(studentsTable).
		Columns("name").
		Values(name).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: build query: %w", err)
	}

	result, err := s.Db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrStudentExists
		}
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudentByID fetches exactly one student by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return s.getOne(ctx, "GetStudentByID", sq.Eq{"id": id})
}

// GetStudentByName fetches exactly one student by name.
func (s *SQLite) GetStudentByName(ctx context.Context, name string) (types.Student, error) {
	return s.getOne(ctx, "GetStudentByName", sq.Eq{"name": name})
}

func (s *SQLite) getOne(ctx context.Context, op string, where sq.Eq) (types.Student, error) {
	query, args, err := s.builder.
		Select("id", "name").
		From(studentsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("%s: build query: %w", op, err)
	}

	var student types.Student
	err = s.Db.QueryRowContext(ctx, query, args...).Scan(&student.ID, &student.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("%s: scan: %w", op, err)
	}

	return student, nil
}

// GetStudents returns all students ordered by id.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	query, args, err := s.builder.
		Select("id", "name").
		From(studentsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: build query: %w", err)
	}

	rows, err := s.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces a student's name and returns the stored record.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error) {
	query, args, err := s.builder.
		Update(studentsTable).
		Set("name", student.Name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: build query: %w", err)
	}

	result, err := s.Db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrStudentExists
		}
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	// Re-fetch so the caller sees exactly what is stored.
	return s.GetStudentByID(ctx, id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	query, args, err := s.builder.
		Delete(studentsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: build query: %w", err)
	}

	result, err := s.Db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrStudentNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
