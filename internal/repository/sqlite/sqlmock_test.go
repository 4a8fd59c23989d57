package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/model"
)

// Driver failures are hard to provoke with a real SQLite file, so these
// tests put go-sqlmock behind the same *sql.DB the repositories use.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{conn: conn}, mock
}

var errDiskIO = errors.New("disk I/O error")

func TestStudentCreate_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO students`).WillReturnError(errDiskIO)

	err := db.Students().Create(context.Background(), &model.Student{Name: "a", City: "b", Address: "c"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskIO)
	assert.Contains(t, err.Error(), "sqlite: creating student")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentGetByID_NoRowsMapsToNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT id, name, city, address, postal_code`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := db.Students().GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentGetByID_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT id, name, city, address, postal_code`).
		WithArgs(int64(5)).
		WillReturnError(errDiskIO)

	_, err := db.Students().GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, errDiskIO)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestStudentList_ScansRows(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "city", "address", "postal_code", "created_at", "updated_at"}).
		AddRow(int64(1), "A", "B", "C", "", now, now).
		AddRow(int64(2), "D", "E", "F", "999", now, now)
	mock.ExpectQuery(`SELECT .* FROM students`).WillReturnRows(rows)

	students, err := db.Students().List(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "D", students[1].Name)
	assert.Equal(t, "999", students[1].PostalCode)
}

func TestStudentList_IterationError(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "city", "address", "postal_code", "created_at", "updated_at"}).
		AddRow(int64(1), "A", "B", "C", "", now, now).
		RowError(0, errDiskIO)
	mock.ExpectQuery(`SELECT .* FROM students`).WillReturnRows(rows)

	_, err := db.Students().List(context.Background())

	assert.ErrorIs(t, err, errDiskIO)
}

func TestStudentUpdate_ZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE students`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.Students().Update(context.Background(), &model.Student{ID: 9, Name: "a", City: "b", Address: "c"})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentDelete_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM students`).WithArgs(int64(3)).WillReturnError(errDiskIO)

	err := db.Students().Delete(context.Background(), 3)

	assert.ErrorIs(t, err, errDiskIO)
	assert.Contains(t, err.Error(), "sqlite: deleting student 3")
}

func TestUserCreate_NonConstraintErrorIsNotConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errDiskIO)

	err := db.Users().Create(context.Background(), &model.User{Username: "x", Password: "y"})

	assert.ErrorIs(t, err, errDiskIO)
	assert.NotErrorIs(t, err, apperror.ErrConflict)
}

func TestUserGetByUsername_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT id, username, password, created_at FROM users`).
		WithArgs("alice").
		WillReturnError(errDiskIO)

	_, err := db.Users().GetByUsername(context.Background(), "alice")

	assert.ErrorIs(t, err, errDiskIO)
	assert.NoError(t, mock.ExpectationsWereMet())
}
