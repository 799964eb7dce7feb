// Package application defines job applications and the eligibility
// classification applied when a student applies.
package application

import (
	"time"

	"github.com/placement-cell/placement_service/internal/domain/job"
)

// Eligibility statuses. The set is closed: only Eligible yields a 201 on
// creation, every other value yields a 202.
const (
	StatusPending               = "pending"
	StatusEligible              = "eligible"
	StatusNotEligible           = "not_eligible"
	StatusConditionallyEligible = "conditionally_eligible"
)

// ValidStatus reports whether s is one of the four eligibility statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusEligible, StatusNotEligible, StatusConditionallyEligible:
		return true
	}
	return false
}

// Application links a student to a job posting. The (student, job) pair is
// unique across the collection.
type Application struct {
	ID                int64     `json:"id" db:"id"`
	StudentID         int64     `json:"student_id" db:"student_id"`
	JobID             int64     `json:"job_id" db:"job_id"`
	EligibilityStatus string    `json:"eligibility_status" db:"eligibility_status"`
	Remarks           string    `json:"remarks" db:"remarks"`
	AppliedAt         time.Time `json:"applied_at" db:"applied_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Classify derives an eligibility status from a student's CGPA and the
// job's requirements. Requirements without a CGPA bound do not participate.
// With no participating requirements the application stays pending for
// manual review.
func Classify(cgpa float64, reqs []job.Requirement) string {
	checked := false
	failedMandatory := false
	failedOptional := false

	for _, r := range reqs {
		if r.MinCGPA == nil {
			continue
		}
		checked = true
		if cgpa >= *r.MinCGPA {
			continue
		}
		if r.Mandatory {
			failedMandatory = true
		} else {
			failedOptional = true
		}
	}

	switch {
	case !checked:
		return StatusPending
	case failedMandatory:
		return StatusNotEligible
	case failedOptional:
		return StatusConditionallyEligible
	default:
		return StatusEligible
	}
}
