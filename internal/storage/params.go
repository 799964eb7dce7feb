package storage

// Pagination defaults and cap applied to every list operation.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries pagination and sorting for a list operation. SortBy is
// checked against a per-entity allow-list by the store; values outside it
// fall back to the entity's default column.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps the parameters to their defaults and bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortOrder != "ASC" && p.SortOrder != "DESC" {
		p.SortOrder = "DESC"
	}
	return p
}

// Offset returns the LIMIT/OFFSET offset for the normalized page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes the position of a page within the full result set.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// NewPagination derives the pagination block from the page position and the
// filtered total. TotalCount is independent of page and limit.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
}

// Page is one page of rows plus its pagination block.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// StudentFilter narrows a student listing. Zero values mean "no filter".
type StudentFilter struct {
	Branch         string
	GraduationYear int
	Search         string // matches name, email or roll number
}

// CompanyFilter narrows a company listing.
type CompanyFilter struct {
	Industry string
	Search   string // matches company name
}

// JobFilter narrows a job listing.
type JobFilter struct {
	CompanyID int64
	Status    string
	JobType   string
	Search    string // matches title or location
}

// ApplicationFilter narrows an application listing.
type ApplicationFilter struct {
	StudentID         int64
	JobID             int64
	EligibilityStatus string
}

// RoleFilter narrows a role listing.
type RoleFilter struct {
	Search string // matches role name
}

// PermissionFilter narrows a permission listing.
type PermissionFilter struct {
	Search string // matches permission name
}
