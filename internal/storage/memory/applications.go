package memory

import (
	"context"
	"time"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/storage"
)

// CreateApplication mirrors the postgres workflow: parent existence,
// duplicate check, deadline check, classification, insert.
func (m *Memory) CreateApplication(_ context.Context, a application.Application) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[a.JobID]
	if !ok {
		return application.Application{}, apperr.NotFound("job not found")
	}
	st, ok := m.students[a.StudentID]
	if !ok {
		return application.Application{}, apperr.NotFound("student not found")
	}

	for _, existing := range m.applications {
		if existing.StudentID == a.StudentID && existing.JobID == a.JobID {
			return application.Application{}, apperr.Conflict("application already exists")
		}
	}

	if time.Now().After(j.ApplicationDeadline) {
		return application.Application{}, apperr.BusinessRule("application deadline has passed")
	}

	if a.EligibilityStatus == "" {
		reqs := []job.Requirement{}
		for _, r := range m.requirements {
			if r.JobID == a.JobID {
				reqs = append(reqs, r)
			}
		}
		a.EligibilityStatus = application.Classify(st.CGPA, reqs)
	}

	a.ID = m.nextIDLocked()
	now := time.Now().UTC()
	a.AppliedAt = now
	a.UpdatedAt = now
	m.applications[a.ID] = a
	return a, nil
}

func (m *Memory) GetApplication(_ context.Context, id int64) (application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.applications[id]
	if !ok {
		return application.Application{}, apperr.NotFound("application not found")
	}
	return a, nil
}

func (m *Memory) ListApplications(_ context.Context, f storage.ApplicationFilter, p storage.ListParams) (storage.Page[application.Application], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []application.Application{}
	for _, a := range m.applications {
		if f.StudentID != 0 && a.StudentID != f.StudentID {
			continue
		}
		if f.JobID != 0 && a.JobID != f.JobID {
			continue
		}
		if f.EligibilityStatus != "" && a.EligibilityStatus != f.EligibilityStatus {
			continue
		}
		matched = append(matched, a)
	}

	sortItems(matched, applicationSortKeys, p, func(a application.Application) int64 { return a.ID })
	return paginate(matched, p), nil
}

var applicationSortKeys = map[string]func(a, b application.Application) bool{
	"applied_at":         func(a, b application.Application) bool { return a.AppliedAt.Before(b.AppliedAt) },
	"eligibility_status": func(a, b application.Application) bool { return a.EligibilityStatus < b.EligibilityStatus },
	"student_id":         func(a, b application.Application) bool { return a.StudentID < b.StudentID },
	"job_id":             func(a, b application.Application) bool { return a.JobID < b.JobID },
}

func (m *Memory) UpdateApplicationStatus(_ context.Context, id int64, status, remarks string) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.applications[id]
	if !ok {
		return application.Application{}, apperr.NotFound("application not found")
	}

	a.EligibilityStatus = status
	if remarks != "" {
		a.Remarks = remarks
	}
	a.UpdatedAt = time.Now().UTC()
	m.applications[id] = a
	return a, nil
}

func (m *Memory) DeleteApplication(_ context.Context, id int64) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.applications[id]
	if !ok {
		return application.Application{}, apperr.NotFound("application not found")
	}
	delete(m.applications, id)
	return a, nil
}
