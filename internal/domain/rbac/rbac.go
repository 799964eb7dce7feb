// Package rbac defines roles, permissions and user accounts.
package rbac

import "time"

// Role groups a set of permissions. Deletion is a hard delete: the row and
// its permission grants are removed outright.
type Role struct {
	ID          int64     `json:"id" db:"id"`
	RoleName    string    `json:"role_name" db:"role_name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RoleUpdate carries a partial patch for a role.
type RoleUpdate struct {
	RoleName    *string
	Description *string
}

// Empty reports whether the patch carries no fields at all.
func (u RoleUpdate) Empty() bool {
	return u.RoleName == nil && u.Description == nil
}

// Permission is a named capability that can be granted to roles.
type Permission struct {
	ID             int64     `json:"id" db:"id"`
	PermissionName string    `json:"permission_name" db:"permission_name"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// PermissionUpdate carries a partial patch for a permission.
type PermissionUpdate struct {
	PermissionName *string
	Description    *string
}

// Empty reports whether the patch carries no fields at all.
func (u PermissionUpdate) Empty() bool {
	return u.PermissionName == nil && u.Description == nil
}

// User is a login account. StudentID is set when the account belongs to a
// registered student.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	RoleID       int64     `json:"role_id" db:"role_id"`
	StudentID    *int64    `json:"student_id,omitempty" db:"student_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
