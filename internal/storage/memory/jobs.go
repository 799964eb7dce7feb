package memory

import (
	"context"
	"strings"
	"time"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/storage"
)

func (m *Memory) CreateJob(_ context.Context, j job.Job) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.companies[j.CompanyID]; !ok {
		return job.Job{}, apperr.NotFound("company not found")
	}

	j.ID = m.nextIDLocked()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	m.jobs[j.ID] = j
	return j, nil
}

func (m *Memory) GetJob(_ context.Context, id int64) (job.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, apperr.NotFound("job not found")
	}
	return j, nil
}

func (m *Memory) ListJobs(_ context.Context, f storage.JobFilter, p storage.ListParams) (storage.Page[job.Job], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []job.Job{}
	for _, j := range m.jobs {
		if f.CompanyID != 0 && j.CompanyID != f.CompanyID {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		if f.Search != "" {
			search := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(j.Title), search) &&
				!strings.Contains(strings.ToLower(j.Location), search) {
				continue
			}
		}
		matched = append(matched, j)
	}

	sortItems(matched, jobSortKeys, p, func(j job.Job) int64 { return j.ID })
	return paginate(matched, p), nil
}

var jobSortKeys = map[string]func(a, b job.Job) bool{
	"created_at":           func(a, b job.Job) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"title":                func(a, b job.Job) bool { return a.Title < b.Title },
	"application_deadline": func(a, b job.Job) bool { return a.ApplicationDeadline.Before(b.ApplicationDeadline) },
	"salary_max":           func(a, b job.Job) bool { return a.SalaryMax < b.SalaryMax },
}

func (m *Memory) UpdateJob(_ context.Context, id int64, u job.Update) (job.Job, error) {
	if u.Empty() {
		return job.Job{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, apperr.NotFound("job not found")
	}

	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.JobType != nil {
		j.JobType = *u.JobType
	}
	if u.SalaryMin != nil {
		j.SalaryMin = *u.SalaryMin
	}
	if u.SalaryMax != nil {
		j.SalaryMax = *u.SalaryMax
	}
	if u.ApplicationDeadline != nil {
		j.ApplicationDeadline = *u.ApplicationDeadline
	}
	if u.Openings != nil {
		j.Openings = *u.Openings
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	j.UpdatedAt = time.Now().UTC()

	m.jobs[id] = j
	return j, nil
}

func (m *Memory) DeleteJob(_ context.Context, id int64) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, apperr.NotFound("job not found")
	}
	delete(m.jobs, id)
	for reqID, r := range m.requirements {
		if r.JobID == id {
			delete(m.requirements, reqID)
		}
	}
	return j, nil
}

// --- Requirements -----------------------------------------------------------

func (m *Memory) AddRequirement(_ context.Context, r job.Requirement) (job.Requirement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[r.JobID]; !ok {
		return job.Requirement{}, apperr.NotFound("job not found")
	}
	r.ID = m.nextIDLocked()
	r.CreatedAt = time.Now().UTC()
	m.requirements[r.ID] = r
	return r, nil
}

func (m *Memory) ListRequirements(_ context.Context, jobID int64) ([]job.Requirement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []job.Requirement{}
	for _, r := range m.requirements {
		if r.JobID == jobID {
			result = append(result, r)
		}
	}
	sortByID(result, func(r job.Requirement) int64 { return r.ID }, "ASC")
	return result, nil
}

func (m *Memory) UpdateRequirement(_ context.Context, id int64, u job.RequirementUpdate) (job.Requirement, error) {
	if u.Empty() {
		return job.Requirement{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requirements[id]
	if !ok {
		return job.Requirement{}, apperr.NotFound("job requirement not found")
	}

	if u.RequirementType != nil {
		r.RequirementType = *u.RequirementType
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.MinCGPA != nil {
		r.MinCGPA = u.MinCGPA
	}
	if u.Mandatory != nil {
		r.Mandatory = *u.Mandatory
	}

	m.requirements[id] = r
	return r, nil
}

func (m *Memory) DeleteRequirement(_ context.Context, id int64) (job.Requirement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requirements[id]
	if !ok {
		return job.Requirement{}, apperr.NotFound("job requirement not found")
	}
	delete(m.requirements, id)
	return r, nil
}
