package memory

import (
	"context"
	"strings"
	"time"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/storage"
)

func (m *Memory) CreateRole(_ context.Context, r rbac.Role) (rbac.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.roles {
		if existing.RoleName == r.RoleName {
			return rbac.Role{}, apperr.Conflict("role already exists")
		}
	}

	r.ID = m.nextIDLocked()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	m.roles[r.ID] = r
	return r, nil
}

func (m *Memory) GetRole(_ context.Context, id int64) (rbac.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.roles[id]
	if !ok {
		return rbac.Role{}, apperr.NotFound("role not found")
	}
	return r, nil
}

func (m *Memory) ListRoles(_ context.Context, f storage.RoleFilter, p storage.ListParams) (storage.Page[rbac.Role], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []rbac.Role{}
	for _, r := range m.roles {
		if f.Search != "" && !strings.Contains(strings.ToLower(r.RoleName), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, r)
	}

	sortItems(matched, roleSortKeys, p, func(r rbac.Role) int64 { return r.ID })
	return paginate(matched, p), nil
}

var roleSortKeys = map[string]func(a, b rbac.Role) bool{
	"created_at": func(a, b rbac.Role) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"role_name":  func(a, b rbac.Role) bool { return a.RoleName < b.RoleName },
}

func (m *Memory) UpdateRole(_ context.Context, id int64, u rbac.RoleUpdate) (rbac.Role, error) {
	if u.Empty() {
		return rbac.Role{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.roles[id]
	if !ok {
		return rbac.Role{}, apperr.NotFound("role not found")
	}

	if u.RoleName != nil {
		for otherID, other := range m.roles {
			if otherID != id && other.RoleName == *u.RoleName {
				return rbac.Role{}, apperr.Conflict("role already exists")
			}
		}
		r.RoleName = *u.RoleName
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	r.UpdatedAt = time.Now().UTC()

	m.roles[id] = r
	return r, nil
}

func (m *Memory) DeleteRole(_ context.Context, id int64) (rbac.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.roles[id]
	if !ok {
		return rbac.Role{}, apperr.NotFound("role not found")
	}
	delete(m.roles, id)
	for key := range m.grants {
		if key.roleID == id {
			delete(m.grants, key)
		}
	}
	return r, nil
}

func (m *Memory) CreatePermission(_ context.Context, perm rbac.Permission) (rbac.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.permissions {
		if existing.PermissionName == perm.PermissionName {
			return rbac.Permission{}, apperr.Conflict("permission already exists")
		}
	}

	perm.ID = m.nextIDLocked()
	perm.CreatedAt = time.Now().UTC()
	m.permissions[perm.ID] = perm
	return perm, nil
}

func (m *Memory) GetPermission(_ context.Context, id int64) (rbac.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	perm, ok := m.permissions[id]
	if !ok {
		return rbac.Permission{}, apperr.NotFound("permission not found")
	}
	return perm, nil
}

func (m *Memory) ListPermissions(_ context.Context, f storage.PermissionFilter, p storage.ListParams) (storage.Page[rbac.Permission], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []rbac.Permission{}
	for _, perm := range m.permissions {
		if f.Search != "" && !strings.Contains(strings.ToLower(perm.PermissionName), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, perm)
	}

	sortItems(matched, permissionSortKeys, p, func(perm rbac.Permission) int64 { return perm.ID })
	return paginate(matched, p), nil
}

var permissionSortKeys = map[string]func(a, b rbac.Permission) bool{
	"created_at":      func(a, b rbac.Permission) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"permission_name": func(a, b rbac.Permission) bool { return a.PermissionName < b.PermissionName },
}

func (m *Memory) UpdatePermission(_ context.Context, id int64, u rbac.PermissionUpdate) (rbac.Permission, error) {
	if u.Empty() {
		return rbac.Permission{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	perm, ok := m.permissions[id]
	if !ok {
		return rbac.Permission{}, apperr.NotFound("permission not found")
	}

	if u.PermissionName != nil {
		perm.PermissionName = *u.PermissionName
	}
	if u.Description != nil {
		perm.Description = *u.Description
	}

	m.permissions[id] = perm
	return perm, nil
}

func (m *Memory) DeletePermission(_ context.Context, id int64) (rbac.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	perm, ok := m.permissions[id]
	if !ok {
		return rbac.Permission{}, apperr.NotFound("permission not found")
	}
	delete(m.permissions, id)
	for key := range m.grants {
		if key.permissionID == id {
			delete(m.grants, key)
		}
	}
	return perm, nil
}

func (m *Memory) GrantPermission(_ context.Context, roleID, permissionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.roles[roleID]; !ok {
		return apperr.NotFound("role not found")
	}
	if _, ok := m.permissions[permissionID]; !ok {
		return apperr.NotFound("permission not found")
	}

	key := grantKey{roleID: roleID, permissionID: permissionID}
	if _, ok := m.grants[key]; ok {
		return apperr.Conflict("permission grant already exists")
	}
	m.grants[key] = struct{}{}
	return nil
}

func (m *Memory) RevokePermission(_ context.Context, roleID, permissionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := grantKey{roleID: roleID, permissionID: permissionID}
	if _, ok := m.grants[key]; !ok {
		return apperr.NotFound("permission grant not found")
	}
	delete(m.grants, key)
	return nil
}

func (m *Memory) ListRolePermissions(_ context.Context, roleID int64) ([]rbac.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []rbac.Permission{}
	for key := range m.grants {
		if key.roleID != roleID {
			continue
		}
		if perm, ok := m.permissions[key.permissionID]; ok {
			result = append(result, perm)
		}
	}
	sortByID(result, func(perm rbac.Permission) int64 { return perm.ID }, "ASC")
	return result, nil
}

// --- Users ------------------------------------------------------------------

func (m *Memory) CreateUser(_ context.Context, u rbac.User) (rbac.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return rbac.User{}, apperr.Conflict("user already exists")
		}
	}
	if _, ok := m.roles[u.RoleID]; !ok {
		return rbac.User{}, apperr.Referential("user references a missing record")
	}

	u.ID = m.nextIDLocked()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (rbac.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return rbac.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (rbac.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return rbac.User{}, apperr.NotFound("user not found")
}
