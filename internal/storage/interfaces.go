// Package storage defines the persistence interfaces implemented by the
// postgres and in-memory stores.
package storage

import (
	"context"

	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/domain/student"
)

// StudentStore persists student records.
type StudentStore interface {
	CreateStudent(ctx context.Context, s student.Student) (student.Student, error)
	GetStudent(ctx context.Context, id int64) (student.Student, error)
	ListStudents(ctx context.Context, f StudentFilter, p ListParams) (Page[student.Student], error)
	UpdateStudent(ctx context.Context, id int64, u student.Update) (student.Student, error)
	DeleteStudent(ctx context.Context, id int64) (student.Student, error)
}

// ProfileStore persists the student profile sub-entities.
type ProfileStore interface {
	AddLanguage(ctx context.Context, l student.Language) (student.Language, error)
	ListLanguages(ctx context.Context, studentID int64) ([]student.Language, error)
	UpdateLanguage(ctx context.Context, id int64, u student.LanguageUpdate) (student.Language, error)
	DeleteLanguage(ctx context.Context, id int64) (student.Language, error)

	AddFamilyMember(ctx context.Context, m student.FamilyMember) (student.FamilyMember, error)
	ListFamilyMembers(ctx context.Context, studentID int64) ([]student.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, id int64, u student.FamilyMemberUpdate) (student.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, id int64) (student.FamilyMember, error)

	AddAddress(ctx context.Context, a student.Address) (student.Address, error)
	ListAddresses(ctx context.Context, studentID int64) ([]student.Address, error)
	UpdateAddress(ctx context.Context, id int64, u student.AddressUpdate) (student.Address, error)
	DeleteAddress(ctx context.Context, id int64) (student.Address, error)
}

// CompanyStore persists company records.
type CompanyStore interface {
	CreateCompany(ctx context.Context, c company.Company) (company.Company, error)
	GetCompany(ctx context.Context, id int64) (company.Company, error)
	ListCompanies(ctx context.Context, f CompanyFilter, p ListParams) (Page[company.Company], error)
	UpdateCompany(ctx context.Context, id int64, u company.Update) (company.Company, error)
	DeleteCompany(ctx context.Context, id int64) (company.Company, error)
}

// JobStore persists job postings and their requirements.
type JobStore interface {
	CreateJob(ctx context.Context, j job.Job) (job.Job, error)
	GetJob(ctx context.Context, id int64) (job.Job, error)
	ListJobs(ctx context.Context, f JobFilter, p ListParams) (Page[job.Job], error)
	UpdateJob(ctx context.Context, id int64, u job.Update) (job.Job, error)
	DeleteJob(ctx context.Context, id int64) (job.Job, error)

	AddRequirement(ctx context.Context, r job.Requirement) (job.Requirement, error)
	ListRequirements(ctx context.Context, jobID int64) ([]job.Requirement, error)
	UpdateRequirement(ctx context.Context, id int64, u job.RequirementUpdate) (job.Requirement, error)
	DeleteRequirement(ctx context.Context, id int64) (job.Requirement, error)
}

// ApplicationStore persists applications. CreateApplication runs the
// eligibility workflow in a single transaction: parent existence, duplicate
// check, deadline check, classification, insert.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, a application.Application) (application.Application, error)
	GetApplication(ctx context.Context, id int64) (application.Application, error)
	ListApplications(ctx context.Context, f ApplicationFilter, p ListParams) (Page[application.Application], error)
	UpdateApplicationStatus(ctx context.Context, id int64, status, remarks string) (application.Application, error)
	DeleteApplication(ctx context.Context, id int64) (application.Application, error)
}

// RBACStore persists roles, permissions and their grants.
type RBACStore interface {
	CreateRole(ctx context.Context, r rbac.Role) (rbac.Role, error)
	GetRole(ctx context.Context, id int64) (rbac.Role, error)
	ListRoles(ctx context.Context, f RoleFilter, p ListParams) (Page[rbac.Role], error)
	UpdateRole(ctx context.Context, id int64, u rbac.RoleUpdate) (rbac.Role, error)
	DeleteRole(ctx context.Context, id int64) (rbac.Role, error)

	CreatePermission(ctx context.Context, perm rbac.Permission) (rbac.Permission, error)
	GetPermission(ctx context.Context, id int64) (rbac.Permission, error)
	ListPermissions(ctx context.Context, f PermissionFilter, p ListParams) (Page[rbac.Permission], error)
	UpdatePermission(ctx context.Context, id int64, u rbac.PermissionUpdate) (rbac.Permission, error)
	DeletePermission(ctx context.Context, id int64) (rbac.Permission, error)

	GrantPermission(ctx context.Context, roleID, permissionID int64) error
	RevokePermission(ctx context.Context, roleID, permissionID int64) error
	ListRolePermissions(ctx context.Context, roleID int64) ([]rbac.Permission, error)
}

// UserStore persists login accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u rbac.User) (rbac.User, error)
	GetUser(ctx context.Context, id int64) (rbac.User, error)
	GetUserByEmail(ctx context.Context, email string) (rbac.User, error)
}
