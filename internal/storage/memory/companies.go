package memory

import (
	"context"
	"strings"
	"time"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/storage"
)

func (m *Memory) CreateCompany(_ context.Context, c company.Company) (company.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.companies {
		if existing.CompanyName == c.CompanyName {
			return company.Company{}, apperr.Conflict("company already exists")
		}
	}

	c.ID = m.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.companies[c.ID] = c
	return c, nil
}

func (m *Memory) GetCompany(_ context.Context, id int64) (company.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, apperr.NotFound("company not found")
	}
	return c, nil
}

func (m *Memory) ListCompanies(_ context.Context, f storage.CompanyFilter, p storage.ListParams) (storage.Page[company.Company], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []company.Company{}
	for _, c := range m.companies {
		if f.Industry != "" && c.Industry != f.Industry {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, c)
	}

	sortItems(matched, companySortKeys, p, func(c company.Company) int64 { return c.ID })
	return paginate(matched, p), nil
}

var companySortKeys = map[string]func(a, b company.Company) bool{
	"created_at":   func(a, b company.Company) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"company_name": func(a, b company.Company) bool { return a.CompanyName < b.CompanyName },
	"industry":     func(a, b company.Company) bool { return a.Industry < b.Industry },
}

func (m *Memory) UpdateCompany(_ context.Context, id int64, u company.Update) (company.Company, error) {
	if u.Empty() {
		return company.Company{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, apperr.NotFound("company not found")
	}

	if u.CompanyName != nil {
		for otherID, other := range m.companies {
			if otherID != id && other.CompanyName == *u.CompanyName {
				return company.Company{}, apperr.Conflict("company already exists")
			}
		}
		c.CompanyName = *u.CompanyName
	}
	if u.Industry != nil {
		c.Industry = *u.Industry
	}
	if u.Website != nil {
		c.Website = *u.Website
	}
	if u.LogoURL != nil {
		c.LogoURL = *u.LogoURL
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.ContactEmail != nil {
		c.ContactEmail = *u.ContactEmail
	}
	c.UpdatedAt = time.Now().UTC()

	m.companies[id] = c
	return c, nil
}

func (m *Memory) DeleteCompany(_ context.Context, id int64) (company.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, apperr.NotFound("company not found")
	}
	delete(m.companies, id)
	for jobID, j := range m.jobs {
		if j.CompanyID == id {
			delete(m.jobs, jobID)
		}
	}
	return c, nil
}
