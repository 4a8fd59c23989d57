package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/model"
	"github.com/sakif/student-records/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` fails to compile if *Y stops implementing X.
var _ repository.StudentRepository = (*StudentDB)(nil)

// StudentDB implements repository.StudentRepository on the students table.
type StudentDB struct {
	conn *sql.DB
}

// Create inserts a new student and fills in its ID and timestamps.
//
// The ID comes from SQLite's AUTOINCREMENT via Result.LastInsertId, so ids
// are never reused after a delete.
func (s *StudentDB) Create(ctx context.Context, student *model.Student) error {
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO students (name, city, address, postal_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		student.Name,
		student.City,
		student.Address,
		student.PostalCode,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading student id: %w", err)
	}
	student.ID = id

	return nil
}

// GetByID retrieves a single student by primary key.
// sql.ErrNoRows is translated to apperror.NotFound.
func (s *StudentDB) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, city, address, postal_code, created_at, updated_at
		 FROM students
		 WHERE id = ?`,
		id,
	).Scan(
		&student.ID,
		&student.Name,
		&student.City,
		&student.Address,
		&student.PostalCode,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("student", id)
		}
		return nil, fmt.Errorf("sqlite: getting student %d: %w", id, err)
	}

	return &student, nil
}

// List returns every student ordered by id. There is no paging: the list
// view shows the whole table.
func (s *StudentDB) List(ctx context.Context) ([]model.Student, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, city, address, postal_code, created_at, updated_at
		 FROM students
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing students: %w", err)
	}
	// CRITICAL: always close rows when done!
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(
			&st.ID, &st.Name, &st.City, &st.Address, &st.PostalCode,
			&st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning student row: %w", err)
		}
		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating students: %w", err)
	}

	return students, nil
}

// Update overwrites the editable fields of an existing student.
//
// A zero RowsAffected means the WHERE clause matched nothing, so the row
// doesn't exist → apperror.NotFound. Concurrent edits are last-writer-wins.
func (s *StudentDB) Update(ctx context.Context, student *model.Student) error {
	student.UpdatedAt = time.Now()

	result, err := s.conn.ExecContext(ctx,
		`UPDATE students
		 SET name = ?, city = ?, address = ?, postal_code = ?, updated_at = ?
		 WHERE id = ?`,
		student.Name,
		student.City,
		student.Address,
		student.PostalCode,
		student.UpdatedAt,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating student %d: %w", student.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("student", student.ID)
	}

	return nil
}

// Delete removes a student by id. Same RowsAffected check as Update.
func (s *StudentDB) Delete(ctx context.Context, id int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM students WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting student %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("student", id)
	}

	return nil
}
