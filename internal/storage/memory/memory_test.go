package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

func seedStudent(t *testing.T, m *Memory, n int) student.Student {
	t.Helper()
	st, err := m.CreateStudent(context.Background(), student.Student{
		FirstName:  fmt.Sprintf("Student%d", n),
		Email:      fmt.Sprintf("student%d@college.edu", n),
		RollNumber: fmt.Sprintf("CS%04d", n),
		Branch:     "CSE",
		CGPA:       8.5,
	})
	require.NoError(t, err)
	return st
}

func TestStudentRoundTrip(t *testing.T) {
	m := New()
	ctx := context.Background()

	created := seedStudent(t, m, 1)
	require.Positive(t, created.ID)

	got, err := m.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, got.Email)

	// Partial update leaves unsupplied fields unchanged.
	phone := "1234567890"
	updated, err := m.UpdateStudent(ctx, created.ID, student.Update{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)
	require.Equal(t, created.Email, updated.Email)
	require.Equal(t, created.CGPA, updated.CGPA)

	_, err = m.DeleteStudent(ctx, created.ID)
	require.NoError(t, err)
	_, err = m.DeleteStudent(ctx, created.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestStudentDuplicateEmail(t *testing.T) {
	m := New()
	seedStudent(t, m, 1)

	_, err := m.CreateStudent(context.Background(), student.Student{
		Email:      "student1@college.edu",
		RollNumber: "CS9999",
	})
	require.True(t, apperr.IsConflict(err))
}

func TestListPaginationTotals(t *testing.T) {
	m := New()
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		seedStudent(t, m, i)
	}

	page, err := m.ListStudents(ctx, storage.StudentFilter{}, storage.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.Equal(t, 25, page.Pagination.TotalCount)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.True(t, page.Pagination.HasNext)
	require.True(t, page.Pagination.HasPrev)

	last, err := m.ListStudents(ctx, storage.StudentFilter{}, storage.ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, last.Items, 5)
	require.False(t, last.Pagination.HasNext)

	// total_count is independent of page and limit.
	require.Equal(t, page.Pagination.TotalCount, last.Pagination.TotalCount)
}

func TestApplicationWorkflow(t *testing.T) {
	m := New()
	ctx := context.Background()

	st := seedStudent(t, m, 1)
	co, err := m.CreateCompany(ctx, company.Company{CompanyName: "Initech"})
	require.NoError(t, err)
	j, err := m.CreateJob(ctx, job.Job{
		CompanyID:           co.ID,
		Title:               "Backend Engineer",
		JobType:             job.TypeFullTime,
		ApplicationDeadline: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	min := 8.0
	_, err = m.AddRequirement(ctx, job.Requirement{JobID: j.ID, RequirementType: job.RequirementEducation, MinCGPA: &min, Mandatory: true})
	require.NoError(t, err)

	app, err := m.CreateApplication(ctx, application.Application{StudentID: st.ID, JobID: j.ID})
	require.NoError(t, err)
	require.Equal(t, application.StatusEligible, app.EligibilityStatus)

	_, err = m.CreateApplication(ctx, application.Application{StudentID: st.ID, JobID: j.ID})
	require.True(t, apperr.IsConflict(err))

	past := time.Now().Add(-time.Hour)
	_, err = m.UpdateJob(ctx, j.ID, job.Update{ApplicationDeadline: &past})
	require.NoError(t, err)

	st2 := seedStudent(t, m, 2)
	_, err = m.CreateApplication(ctx, application.Application{StudentID: st2.ID, JobID: j.ID})
	require.Equal(t, apperr.KindBusinessRule, apperr.KindOf(err))
}
