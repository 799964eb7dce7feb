// Package job defines job postings and their requirements.
package job

import "time"

// Job types accepted for a posting.
const (
	TypeFullTime   = "full_time"
	TypeInternship = "internship"
	TypeContract   = "contract"
)

// Posting statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Requirement types.
const (
	RequirementSkill      = "skill"
	RequirementEducation  = "education"
	RequirementExperience = "experience"
)

// Job represents a posting published by a company.
type Job struct {
	ID                  int64     `json:"id" db:"id"`
	CompanyID           int64     `json:"company_id" db:"company_id"`
	Title               string    `json:"title" db:"title"`
	Description         string    `json:"description" db:"description"`
	Location            string    `json:"location" db:"location"`
	JobType             string    `json:"job_type" db:"job_type"`
	SalaryMin           float64   `json:"salary_min" db:"salary_min"`
	SalaryMax           float64   `json:"salary_max" db:"salary_max"`
	ApplicationDeadline time.Time `json:"application_deadline" db:"application_deadline"`
	Openings            int       `json:"openings" db:"openings"`
	Status              string    `json:"status" db:"status"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// Update carries a partial patch. Nil fields keep their stored values.
type Update struct {
	Title               *string
	Description         *string
	Location            *string
	JobType             *string
	SalaryMin           *float64
	SalaryMax           *float64
	ApplicationDeadline *time.Time
	Openings            *int
	Status              *string
}

// Empty reports whether the patch carries no fields at all.
func (u Update) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil &&
		u.JobType == nil && u.SalaryMin == nil && u.SalaryMax == nil &&
		u.ApplicationDeadline == nil && u.Openings == nil && u.Status == nil
}

// Requirement is a single eligibility criterion attached to a job. MinCGPA
// is nil when the requirement does not constrain CGPA.
type Requirement struct {
	ID              int64     `json:"id" db:"id"`
	JobID           int64     `json:"job_id" db:"job_id"`
	RequirementType string    `json:"requirement_type" db:"requirement_type"`
	Description     string    `json:"description" db:"description"`
	MinCGPA         *float64  `json:"min_cgpa,omitempty" db:"min_cgpa"`
	Mandatory       bool      `json:"mandatory" db:"mandatory"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RequirementUpdate carries a partial patch for a requirement.
type RequirementUpdate struct {
	RequirementType *string
	Description     *string
	MinCGPA         *float64
	Mandatory       *bool
}

// Empty reports whether the patch carries no fields at all.
func (u RequirementUpdate) Empty() bool {
	return u.RequirementType == nil && u.Description == nil &&
		u.MinCGPA == nil && u.Mandatory == nil
}
