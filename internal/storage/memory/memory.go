// Package memory is a thread-safe in-memory persistence layer implementing
// the storage interfaces. It is intended for tests and prototyping and
// mirrors the postgres store's error kinds so handlers behave identically
// against either implementation.
package memory

import (
	"sort"
	"sync"

	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

type grantKey struct {
	roleID       int64
	permissionID int64
}

// Memory holds every collection behind one lock. Listing honors the same
// per-entity sort allow-lists as the postgres store; keys outside the list
// fall back to identifier order.
type Memory struct {
	mu     sync.RWMutex
	nextID int64

	students     map[int64]student.Student
	languages    map[int64]student.Language
	family       map[int64]student.FamilyMember
	addresses    map[int64]student.Address
	companies    map[int64]company.Company
	jobs         map[int64]job.Job
	requirements map[int64]job.Requirement
	applications map[int64]application.Application
	roles        map[int64]rbac.Role
	permissions  map[int64]rbac.Permission
	grants       map[grantKey]struct{}
	users        map[int64]rbac.User
}

var _ storage.StudentStore = (*Memory)(nil)
var _ storage.ProfileStore = (*Memory)(nil)
var _ storage.CompanyStore = (*Memory)(nil)
var _ storage.JobStore = (*Memory)(nil)
var _ storage.ApplicationStore = (*Memory)(nil)
var _ storage.RBACStore = (*Memory)(nil)
var _ storage.UserStore = (*Memory)(nil)

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{
		nextID:       1,
		students:     make(map[int64]student.Student),
		languages:    make(map[int64]student.Language),
		family:       make(map[int64]student.FamilyMember),
		addresses:    make(map[int64]student.Address),
		companies:    make(map[int64]company.Company),
		jobs:         make(map[int64]job.Job),
		requirements: make(map[int64]job.Requirement),
		applications: make(map[int64]application.Application),
		roles:        make(map[int64]rbac.Role),
		permissions:  make(map[int64]rbac.Permission),
		grants:       make(map[grantKey]struct{}),
		users:        make(map[int64]rbac.User),
	}
}

func (m *Memory) nextIDLocked() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// paginate slices a fully filtered, sorted result set into one page.
func paginate[T any](items []T, p storage.ListParams) storage.Page[T] {
	total := len(items)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return storage.Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Pagination: storage.NewPagination(p.Page, p.Limit, total),
	}
}

// sortByID orders items by their identifier, honoring the requested order.
func sortByID[T any](items []T, id func(T) int64, order string) {
	sort.Slice(items, func(i, j int) bool {
		if order == "ASC" {
			return id(items[i]) < id(items[j])
		}
		return id(items[i]) > id(items[j])
	})
}

// sortItems orders items by the requested sort key when the entity's
// allow-list knows it, falling back to identifier order. This mirrors the
// postgres allow-list fallback so handler tests exercise the same sort
// semantics against either store.
func sortItems[T any](items []T, keys map[string]func(a, b T) bool, p storage.ListParams, id func(T) int64) {
	less := keys[p.SortBy]
	if less == nil {
		less = func(a, b T) bool { return id(a) < id(b) }
	}
	sort.Slice(items, func(i, j int) bool {
		if p.SortOrder == "ASC" {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
