package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

const applicationCols = "id, student_id, job_id, eligibility_status, remarks, applied_at, updated_at"

var applicationSortColumns = map[string]string{
	"applied_at":         "applied_at",
	"eligibility_status": "eligibility_status",
	"student_id":         "student_id",
	"job_id":             "job_id",
}

// CreateApplication runs the whole application workflow in one transaction:
// job and student must exist, the (student, job) pair must be new, the job's
// deadline must not have passed. When the caller supplied no eligibility
// status one is derived from the student's CGPA against the job's
// requirements.
func (s *Store) CreateApplication(ctx context.Context, a application.Application) (application.Application, error) {
	var created application.Application
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var j job.Job
		if err := tx.GetContext(ctx, &j,
			`SELECT `+jobCols+` FROM jobs WHERE id = $1`, a.JobID); err != nil {
			return classify(err, "job")
		}

		var st student.Student
		if err := tx.GetContext(ctx, &st,
			`SELECT `+studentCols+` FROM students WHERE id = $1`, a.StudentID); err != nil {
			return classify(err, "student")
		}

		var duplicate bool
		if err := tx.GetContext(ctx, &duplicate,
			`SELECT EXISTS (SELECT 1 FROM applications WHERE student_id = $1 AND job_id = $2)`,
			a.StudentID, a.JobID); err != nil {
			return fmt.Errorf("check duplicate application: %w", err)
		}
		if duplicate {
			return apperr.Conflict("application already exists")
		}

		if time.Now().After(j.ApplicationDeadline) {
			return apperr.BusinessRule("application deadline has passed")
		}

		if a.EligibilityStatus == "" {
			reqs := []job.Requirement{}
			if err := tx.SelectContext(ctx, &reqs,
				`SELECT `+requirementCols+` FROM job_requirements WHERE job_id = $1 ORDER BY id`,
				a.JobID); err != nil {
				return fmt.Errorf("load job requirements: %w", err)
			}
			a.EligibilityStatus = application.Classify(st.CGPA, reqs)
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO applications (student_id, job_id, eligibility_status, remarks)
			VALUES ($1, $2, $3, $4)
			RETURNING `+applicationCols,
			a.StudentID, a.JobID, a.EligibilityStatus, a.Remarks)
	})
	if err != nil {
		return application.Application{}, classify(err, "application")
	}
	return created, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (application.Application, error) {
	var a application.Application
	err := s.db.GetContext(ctx, &a,
		`SELECT `+applicationCols+` FROM applications WHERE id = $1`, id)
	if err != nil {
		return application.Application{}, classify(err, "application")
	}
	return a, nil
}

func (s *Store) ListApplications(ctx context.Context, f storage.ApplicationFilter, p storage.ListParams) (storage.Page[application.Application], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.StudentID != 0 {
		b.add("student_id = $?", f.StudentID)
	}
	if f.JobID != 0 {
		b.add("job_id = $?", f.JobID)
	}
	if f.EligibilityStatus != "" {
		b.add("eligibility_status = $?", f.EligibilityStatus)
	}

	orderBy := sortColumn(applicationSortColumns, p.SortBy, "applied_at") + " " + p.SortOrder
	return listPage[application.Application](ctx, s.db, applicationCols, "applications", b, orderBy, p)
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status, remarks string) (application.Application, error) {
	var updated application.Application
	err := s.db.GetContext(ctx, &updated, `
		UPDATE applications SET
			eligibility_status = $2,
			remarks            = COALESCE(NULLIF($3, ''), remarks),
			updated_at         = $4
		WHERE id = $1
		RETURNING `+applicationCols,
		id, status, remarks, time.Now().UTC())
	if err != nil {
		return application.Application{}, classify(err, "application")
	}
	return updated, nil
}

func (s *Store) DeleteApplication(ctx context.Context, id int64) (application.Application, error) {
	var deleted application.Application
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM applications WHERE id = $1 RETURNING `+applicationCols, id)
	if err != nil {
		return application.Application{}, classify(err, "application")
	}
	return deleted, nil
}
