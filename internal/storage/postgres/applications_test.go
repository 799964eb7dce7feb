package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/application"
)

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_id", "title", "description", "location", "job_type",
		"salary_min", "salary_max", "application_deadline", "openings", "status",
		"created_at", "updated_at",
	})
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "job_id", "eligibility_status", "remarks",
		"applied_at", "updated_at",
	})
}

func expectJobAndStudent(mock sqlmock.Sqlmock, deadline time.Time, cgpa float64) {
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id`).
		WithArgs(int64(7)).
		WillReturnRows(jobRows().
			AddRow(7, 1, "Backend Engineer", "", "Remote", "full_time",
				0, 0, deadline, 2, "open", now, now))
	mock.ExpectQuery(`SELECT .+ FROM students WHERE id`).
		WithArgs(int64(3)).
		WillReturnRows(studentRows().
			AddRow(3, "Ada", "Lovelace", "ada@college.edu", "CS2021001", "CSE",
				cgpa, 2025, "", "", now, now))
}

func TestCreateApplicationEligible(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	deadline := now.Add(48 * time.Hour)
	minCGPA := 8.0

	mock.ExpectBegin()
	expectJobAndStudent(mock, deadline, 9.1)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM applications`).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT .+ FROM job_requirements WHERE job_id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "requirement_type", "description", "min_cgpa", "mandatory", "created_at",
		}).AddRow(1, 7, "education", "min CGPA", minCGPA, true, now))
	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(int64(3), int64(7), application.StatusEligible, "").
		WillReturnRows(applicationRows().
			AddRow(10, 3, 7, application.StatusEligible, "", now, now))
	mock.ExpectCommit()

	created, err := store.CreateApplication(context.Background(), application.Application{
		StudentID: 3,
		JobID:     7,
	})
	require.NoError(t, err)
	require.Equal(t, application.StatusEligible, created.EligibilityStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationDuplicate(t *testing.T) {
	store, mock := newMockStore(t)
	deadline := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	expectJobAndStudent(mock, deadline, 9.1)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM applications`).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := store.CreateApplication(context.Background(), application.Application{
		StudentID: 3,
		JobID:     7,
	})
	require.True(t, apperr.IsConflict(err))
	require.Contains(t, err.Error(), "already exists")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationDeadlinePassed(t *testing.T) {
	store, mock := newMockStore(t)
	deadline := time.Now().Add(-time.Hour)

	mock.ExpectBegin()
	expectJobAndStudent(mock, deadline, 9.1)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM applications`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := store.CreateApplication(context.Background(), application.Application{
		StudentID: 3,
		JobID:     7,
	})
	require.Equal(t, apperr.KindBusinessRule, apperr.KindOf(err))
	require.Contains(t, err.Error(), "deadline has passed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationSuppliedStatus(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	deadline := now.Add(48 * time.Hour)

	// A caller-supplied status skips the requirements lookup entirely.
	mock.ExpectBegin()
	expectJobAndStudent(mock, deadline, 5.0)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM applications`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(int64(3), int64(7), application.StatusConditionallyEligible, "needs review").
		WillReturnRows(applicationRows().
			AddRow(11, 3, 7, application.StatusConditionallyEligible, "needs review", now, now))
	mock.ExpectCommit()

	created, err := store.CreateApplication(context.Background(), application.Application{
		StudentID:         3,
		JobID:             7,
		EligibilityStatus: application.StatusConditionallyEligible,
		Remarks:           "needs review",
	})
	require.NoError(t, err)
	require.Equal(t, application.StatusConditionallyEligible, created.EligibilityStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationJobMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id`).
		WithArgs(int64(99)).
		WillReturnRows(jobRows())
	mock.ExpectRollback()

	_, err := store.CreateApplication(context.Background(), application.Application{
		StudentID: 3,
		JobID:     99,
	})
	require.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
