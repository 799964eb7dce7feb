package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/storage"
)

const jobCols = "id, company_id, title, description, location, job_type, salary_min, salary_max, application_deadline, openings, status, created_at, updated_at"

const requirementCols = "id, job_id, requirement_type, description, min_cgpa, mandatory, created_at"

var jobSortColumns = map[string]string{
	"created_at":           "created_at",
	"title":                "title",
	"application_deadline": "application_deadline",
	"salary_max":           "salary_max",
}

func (s *Store) CreateJob(ctx context.Context, j job.Job) (job.Job, error) {
	var created job.Job
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, j.CompanyID)
		if err != nil {
			return fmt.Errorf("check company exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("company not found")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO jobs (company_id, title, description, location, job_type, salary_min, salary_max, application_deadline, openings, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+jobCols,
			j.CompanyID, j.Title, j.Description, j.Location, j.JobType,
			j.SalaryMin, j.SalaryMax, j.ApplicationDeadline, j.Openings, j.Status)
	})
	if err != nil {
		return job.Job{}, classify(err, "job")
	}
	return created, nil
}

func (s *Store) GetJob(ctx context.Context, id int64) (job.Job, error) {
	var j job.Job
	err := s.db.GetContext(ctx, &j, `SELECT `+jobCols+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return job.Job{}, classify(err, "job")
	}
	return j, nil
}

func (s *Store) ListJobs(ctx context.Context, f storage.JobFilter, p storage.ListParams) (storage.Page[job.Job], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.CompanyID != 0 {
		b.add("company_id = $?", f.CompanyID)
	}
	if f.Status != "" {
		b.add("status = $?", f.Status)
	}
	if f.JobType != "" {
		b.add("job_type = $?", f.JobType)
	}
	if f.Search != "" {
		b.add("(title ILIKE $? OR location ILIKE $?)", "%"+f.Search+"%")
	}

	orderBy := sortColumn(jobSortColumns, p.SortBy, "created_at") + " " + p.SortOrder
	return listPage[job.Job](ctx, s.db, jobCols, "jobs", b, orderBy, p)
}

func (s *Store) UpdateJob(ctx context.Context, id int64, u job.Update) (job.Job, error) {
	if u.Empty() {
		return job.Job{}, apperr.BusinessRule("no fields to update")
	}

	var updated job.Job
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("check job exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("job not found")
		}

		return tx.GetContext(ctx, &updated, `
			UPDATE jobs SET
				title                = COALESCE($2, title),
				description          = COALESCE($3, description),
				location             = COALESCE($4, location),
				job_type             = COALESCE($5, job_type),
				salary_min           = COALESCE($6, salary_min),
				salary_max           = COALESCE($7, salary_max),
				application_deadline = COALESCE($8, application_deadline),
				openings             = COALESCE($9, openings),
				status               = COALESCE($10, status),
				updated_at           = $11
			WHERE id = $1
			RETURNING `+jobCols,
			id, u.Title, u.Description, u.Location, u.JobType, u.SalaryMin,
			u.SalaryMax, u.ApplicationDeadline, u.Openings, u.Status, time.Now().UTC())
	})
	if err != nil {
		return job.Job{}, classify(err, "job")
	}
	return updated, nil
}

func (s *Store) DeleteJob(ctx context.Context, id int64) (job.Job, error) {
	var deleted job.Job
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM jobs WHERE id = $1 RETURNING `+jobCols, id)
	if err != nil {
		return job.Job{}, classify(err, "job")
	}
	return deleted, nil
}

// --- Requirements -----------------------------------------------------------

func (s *Store) AddRequirement(ctx context.Context, r job.Requirement) (job.Requirement, error) {
	var created job.Requirement
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, r.JobID)
		if err != nil {
			return fmt.Errorf("check job exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("job not found")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO job_requirements (job_id, requirement_type, description, min_cgpa, mandatory)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+requirementCols,
			r.JobID, r.RequirementType, r.Description, r.MinCGPA, r.Mandatory)
	})
	if err != nil {
		return job.Requirement{}, classify(err, "job requirement")
	}
	return created, nil
}

func (s *Store) ListRequirements(ctx context.Context, jobID int64) ([]job.Requirement, error) {
	reqs := []job.Requirement{}
	err := s.db.SelectContext(ctx, &reqs,
		`SELECT `+requirementCols+` FROM job_requirements WHERE job_id = $1 ORDER BY id`, jobID)
	if err != nil {
		return nil, classify(err, "job requirement")
	}
	return reqs, nil
}

func (s *Store) UpdateRequirement(ctx context.Context, id int64, u job.RequirementUpdate) (job.Requirement, error) {
	if u.Empty() {
		return job.Requirement{}, apperr.BusinessRule("no fields to update")
	}

	var updated job.Requirement
	err := s.db.GetContext(ctx, &updated, `
		UPDATE job_requirements SET
			requirement_type = COALESCE($2, requirement_type),
			description      = COALESCE($3, description),
			min_cgpa         = COALESCE($4, min_cgpa),
			mandatory        = COALESCE($5, mandatory)
		WHERE id = $1
		RETURNING `+requirementCols,
		id, u.RequirementType, u.Description, u.MinCGPA, u.Mandatory)
	if err != nil {
		return job.Requirement{}, classify(err, "job requirement")
	}
	return updated, nil
}

func (s *Store) DeleteRequirement(ctx context.Context, id int64) (job.Requirement, error) {
	var deleted job.Requirement
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM job_requirements WHERE id = $1 RETURNING `+requirementCols, id)
	if err != nil {
		return job.Requirement{}, classify(err, "job requirement")
	}
	return deleted, nil
}
