// Package student defines the student entity and its profile sub-entities.
package student

import "time"

// Proficiency levels accepted for a student language record.
const (
	ProficiencyBasic        = "basic"
	ProficiencyIntermediate = "intermediate"
	ProficiencyFluent       = "fluent"
	ProficiencyNative       = "native"
)

// Address types accepted for a student address record.
const (
	AddressPermanent = "permanent"
	AddressCurrent   = "current"
)

// Student represents a registered candidate in the placement cell.
type Student struct {
	ID             int64     `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	RollNumber     string    `json:"roll_number" db:"roll_number"`
	Branch         string    `json:"branch" db:"branch"`
	CGPA           float64   `json:"cgpa" db:"cgpa"`
	GraduationYear int       `json:"graduation_year" db:"graduation_year"`
	Phone          string    `json:"phone" db:"phone"`
	ResumeURL      string    `json:"resume_url" db:"resume_url"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Update carries a partial patch. Nil fields keep their stored values;
// a field cannot be nulled out through this path.
type Update struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Branch         *string
	CGPA           *float64
	GraduationYear *int
	Phone          *string
	ResumeURL      *string
}

// Empty reports whether the patch carries no fields at all.
func (u Update) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Branch == nil && u.CGPA == nil && u.GraduationYear == nil &&
		u.Phone == nil && u.ResumeURL == nil
}

// Language is a spoken-language record attached to a student.
type Language struct {
	ID          int64  `json:"id" db:"id"`
	StudentID   int64  `json:"student_id" db:"student_id"`
	Language    string `json:"language" db:"language"`
	Proficiency string `json:"proficiency" db:"proficiency"`
}

// LanguageUpdate carries a partial patch for a language record.
type LanguageUpdate struct {
	Language    *string
	Proficiency *string
}

// Empty reports whether the patch carries no fields at all.
func (u LanguageUpdate) Empty() bool {
	return u.Language == nil && u.Proficiency == nil
}

// FamilyMember is a family record attached to a student.
type FamilyMember struct {
	ID         int64  `json:"id" db:"id"`
	StudentID  int64  `json:"student_id" db:"student_id"`
	Name       string `json:"name" db:"name"`
	Relation   string `json:"relation" db:"relation"`
	Occupation string `json:"occupation" db:"occupation"`
	Phone      string `json:"phone" db:"phone"`
}

// FamilyMemberUpdate carries a partial patch for a family record.
type FamilyMemberUpdate struct {
	Name       *string
	Relation   *string
	Occupation *string
	Phone      *string
}

// Empty reports whether the patch carries no fields at all.
func (u FamilyMemberUpdate) Empty() bool {
	return u.Name == nil && u.Relation == nil && u.Occupation == nil && u.Phone == nil
}

// Address is a postal address attached to a student.
type Address struct {
	ID          int64  `json:"id" db:"id"`
	StudentID   int64  `json:"student_id" db:"student_id"`
	AddressType string `json:"address_type" db:"address_type"`
	Line1       string `json:"line1" db:"line1"`
	Line2       string `json:"line2" db:"line2"`
	City        string `json:"city" db:"city"`
	State       string `json:"state" db:"state"`
	PostalCode  string `json:"postal_code" db:"postal_code"`
	Country     string `json:"country" db:"country"`
}

// AddressUpdate carries a partial patch for an address record.
type AddressUpdate struct {
	AddressType *string
	Line1       *string
	Line2       *string
	City        *string
	State       *string
	PostalCode  *string
	Country     *string
}

// Empty reports whether the patch carries no fields at all.
func (u AddressUpdate) Empty() bool {
	return u.AddressType == nil && u.Line1 == nil && u.Line2 == nil &&
		u.City == nil && u.State == nil && u.PostalCode == nil && u.Country == nil
}
