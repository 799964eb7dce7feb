package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "roll_number", "branch",
		"cgpa", "graduation_year", "phone", "resume_url", "created_at", "updated_at",
	})
}

func TestCreateStudent(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM students`).
		WithArgs("ada@college.edu", "CS2021001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO students`).
		WillReturnRows(studentRows().
			AddRow(1, "Ada", "Lovelace", "ada@college.edu", "CS2021001", "CSE",
				9.1, 2025, "", "", now, now))
	mock.ExpectCommit()

	created, err := store.CreateStudent(context.Background(), student.Student{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@college.edu",
		RollNumber: "CS2021001",
		Branch:     "CSE",
		CGPA:       9.1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "ada@college.edu", created.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudentConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM students`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := store.CreateStudent(context.Background(), student.Student{
		Email:      "ada@college.edu",
		RollNumber: "CS2021001",
	})
	require.True(t, apperr.IsConflict(err))
	require.Contains(t, err.Error(), "already exists")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM students WHERE id`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetStudent(context.Background(), 42)
	require.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentsPagination(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students WHERE branch =`).
		WithArgs("CSE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery(`SELECT .+ FROM students WHERE branch = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("CSE", 10, 10).
		WillReturnRows(studentRows().
			AddRow(11, "Ada", "Lovelace", "ada@college.edu", "CS2021001", "CSE",
				9.1, 2025, "", "", now, now))

	page, err := store.ListStudents(context.Background(),
		storage.StudentFilter{Branch: "CSE"},
		storage.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, 23, page.Pagination.TotalCount)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.True(t, page.Pagination.HasNext)
	require.True(t, page.Pagination.HasPrev)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentsSortFallback(t *testing.T) {
	store, mock := newMockStore(t)

	// A sort key outside the allow-list must fall back to the default column.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY created_at ASC LIMIT`).
		WithArgs(10, 0).
		WillReturnRows(studentRows())

	page, err := store.ListStudents(context.Background(),
		storage.StudentFilter{},
		storage.ListParams{SortBy: "email; DROP TABLE students", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.False(t, page.Pagination.HasNext)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStudentNoFields(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.UpdateStudent(context.Background(), 1, student.Update{})
	require.Equal(t, apperr.KindBusinessRule, apperr.KindOf(err))
}

func TestUpdateStudentPartial(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	phone := "9999999999"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM students WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`UPDATE students SET`).
		WillReturnRows(studentRows().
			AddRow(1, "Ada", "Lovelace", "ada@college.edu", "CS2021001", "CSE",
				9.1, 2025, phone, "", now, now))
	mock.ExpectCommit()

	updated, err := store.UpdateStudent(context.Background(), 1, student.Update{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)
	// Unsupplied fields keep their stored values.
	require.Equal(t, "Ada", updated.FirstName)
	require.Equal(t, 9.1, updated.CGPA)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStudentNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`DELETE FROM students WHERE id = \$1 RETURNING`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.DeleteStudent(context.Background(), 404)
	require.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
