// Package postgres implements storage.Storage on PostgreSQL through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aanand-mishra/skillbridge/internal/config"
	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/migrations"
	"github.com/aanand-mishra/skillbridge/internal/storage"
	"github.com/aanand-mishra/skillbridge/internal/types"
)

const studentsTable = "students"

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	Db *sql.DB

	builder sq.StatementBuilderType
}

// New connects to cfg.DSN, applies the schema migrations and returns a
// ready-to-use *Postgres.
func New(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Postgres, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if err := migrations.Migrate(ctx, db, migrations.Postgres, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: %w", err)
	}

	log.Info().Msg("connected to postgres")

	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened and migrated connection pool.
func NewWithDB(db *sql.DB) *Postgres {
	return &Postgres{
		Db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateStudent inserts a student and returns the id from RETURNING.
func (p *Postgres) CreateStudent(ctx context.Context, name string) (int64, error) {
	query, args, err := p.builder.
		Insert(studentsTable).
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: build query: %w", err)
	}

	var id int64
	if err := p.Db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return 0, storage.ErrStudentExists
		}
		return 0, fmt.Errorf("CreateStudent: unexpected DB error: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches one student by primary key.
func (p *Postgres) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return p.getOne(ctx, "GetStudentByID", sq.Eq{"id": id})
}

// GetStudentByName fetches one student by exact name.
func (p *Postgres) GetStudentByName(ctx context.Context, name string) (types.Student, error) {
	return p.getOne(ctx, "GetStudentByName", sq.Eq{"name": name})
}

func (p *Postgres) getOne(ctx context.Context, op string, where sq.Eq) (types.Student, error) {
	query, args, err := p.builder.
		Select("id", "name").
		From(studentsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("%s: build query: %w", op, err)
	}

	var student types.Student
	err = p.Db.QueryRowContext(ctx, query, args...).Scan(&student.ID, &student.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("%s: unexpected DB error: %w", op, err)
	}

	return student, nil
}

// GetStudents returns every student ordered by id.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	query, args, err := p.builder.
		Select("id", "name").
		From(studentsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: build query: %w", err)
	}

	rows, err := p.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

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

// UpdateStudentByID renames a student and returns the updated row.
func (p *Postgres) UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error) {
	query, args, err := p.builder.
		Update(studentsTable).
		Set("name", student.Name).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: build query: %w", err)
	}

	var updated types.Student
	err = p.Db.QueryRowContext(ctx, query, args...).Scan(&updated.ID, &updated.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return types.Student{}, storage.ErrStudentNotFound
		case postgresError(err) == pgerrcode.UniqueViolation:
			return types.Student{}, storage.ErrStudentExists
		default:
			return types.Student{}, fmt.Errorf("UpdateStudentByID: unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// DeleteStudentByID removes a student by primary key.
func (p *Postgres) DeleteStudentByID(ctx context.Context, id int64) error {
	query, args, err := p.builder.
		Delete(studentsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: build query: %w", err)
	}

	result, err := p.Db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.Db.PingContext(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.Db.Close()
}

// postgresError returns the SQLSTATE code of err, or "" if err is not a
// PostgreSQL error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
