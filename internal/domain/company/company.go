// Package company defines the recruiting company entity.
package company

import "time"

// Company represents a recruiting organization. The logo URL is stored
// verbatim from the external upload collaborator.
type Company struct {
	ID           int64     `json:"id" db:"id"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	Industry     string    `json:"industry" db:"industry"`
	Website      string    `json:"website" db:"website"`
	LogoURL      string    `json:"logo_url" db:"logo_url"`
	Description  string    `json:"description" db:"description"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Update carries a partial patch. Nil fields keep their stored values.
type Update struct {
	CompanyName  *string
	Industry     *string
	Website      *string
	LogoURL      *string
	Description  *string
	ContactEmail *string
}

// Empty reports whether the patch carries no fields at all.
func (u Update) Empty() bool {
	return u.CompanyName == nil && u.Industry == nil && u.Website == nil &&
		u.LogoURL == nil && u.Description == nil && u.ContactEmail == nil
}
