package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/storage"
)

const roleCols = "id, role_name, description, created_at, updated_at"

const permissionCols = "id, permission_name, description, created_at"

var roleSortColumns = map[string]string{
	"created_at": "created_at",
	"role_name":  "role_name",
}

var permissionSortColumns = map[string]string{
	"created_at":      "created_at",
	"permission_name": "permission_name",
}

func (s *Store) CreateRole(ctx context.Context, r rbac.Role) (rbac.Role, error) {
	var created rbac.Role
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM roles WHERE role_name = $1)`, r.RoleName)
		if err != nil {
			return fmt.Errorf("check role exists: %w", err)
		}
		if exists {
			return apperr.Conflict("role already exists")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO roles (role_name, description)
			VALUES ($1, $2)
			RETURNING `+roleCols,
			r.RoleName, r.Description)
	})
	if err != nil {
		return rbac.Role{}, classify(err, "role")
	}
	return created, nil
}

func (s *Store) GetRole(ctx context.Context, id int64) (rbac.Role, error) {
	var r rbac.Role
	err := s.db.GetContext(ctx, &r, `SELECT `+roleCols+` FROM roles WHERE id = $1`, id)
	if err != nil {
		return rbac.Role{}, classify(err, "role")
	}
	return r, nil
}

func (s *Store) ListRoles(ctx context.Context, f storage.RoleFilter, p storage.ListParams) (storage.Page[rbac.Role], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.Search != "" {
		b.add("role_name ILIKE $?", "%"+f.Search+"%")
	}

	orderBy := sortColumn(roleSortColumns, p.SortBy, "created_at") + " " + p.SortOrder
	return listPage[rbac.Role](ctx, s.db, roleCols, "roles", b, orderBy, p)
}

func (s *Store) UpdateRole(ctx context.Context, id int64, u rbac.RoleUpdate) (rbac.Role, error) {
	if u.Empty() {
		return rbac.Role{}, apperr.BusinessRule("no fields to update")
	}

	var updated rbac.Role
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("check role exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("role not found")
		}

		if u.RoleName != nil {
			var taken bool
			if err := tx.GetContext(ctx, &taken,
				`SELECT EXISTS (SELECT 1 FROM roles WHERE role_name = $1 AND id <> $2)`,
				*u.RoleName, id); err != nil {
				return fmt.Errorf("check role name: %w", err)
			}
			if taken {
				return apperr.Conflict("role already exists")
			}
		}

		return tx.GetContext(ctx, &updated, `
			UPDATE roles SET
				role_name   = COALESCE($2, role_name),
				description = COALESCE($3, description),
				updated_at  = $4
			WHERE id = $1
			RETURNING `+roleCols,
			id, u.RoleName, u.Description, time.Now().UTC())
	})
	if err != nil {
		return rbac.Role{}, classify(err, "role")
	}
	return updated, nil
}

// DeleteRole removes the role outright. Grants go with it via the
// role_permissions cascade.
func (s *Store) DeleteRole(ctx context.Context, id int64) (rbac.Role, error) {
	var deleted rbac.Role
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM roles WHERE id = $1 RETURNING `+roleCols, id)
	if err != nil {
		return rbac.Role{}, classify(err, "role")
	}
	return deleted, nil
}

// --- Permissions ------------------------------------------------------------

func (s *Store) CreatePermission(ctx context.Context, perm rbac.Permission) (rbac.Permission, error) {
	var created rbac.Permission
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM permissions WHERE permission_name = $1)`, perm.PermissionName)
		if err != nil {
			return fmt.Errorf("check permission exists: %w", err)
		}
		if exists {
			return apperr.Conflict("permission already exists")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO permissions (permission_name, description)
			VALUES ($1, $2)
			RETURNING `+permissionCols,
			perm.PermissionName, perm.Description)
	})
	if err != nil {
		return rbac.Permission{}, classify(err, "permission")
	}
	return created, nil
}

func (s *Store) GetPermission(ctx context.Context, id int64) (rbac.Permission, error) {
	var perm rbac.Permission
	err := s.db.GetContext(ctx, &perm,
		`SELECT `+permissionCols+` FROM permissions WHERE id = $1`, id)
	if err != nil {
		return rbac.Permission{}, classify(err, "permission")
	}
	return perm, nil
}

func (s *Store) ListPermissions(ctx context.Context, f storage.PermissionFilter, p storage.ListParams) (storage.Page[rbac.Permission], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.Search != "" {
		b.add("permission_name ILIKE $?", "%"+f.Search+"%")
	}

	orderBy := sortColumn(permissionSortColumns, p.SortBy, "created_at") + " " + p.SortOrder
	return listPage[rbac.Permission](ctx, s.db, permissionCols, "permissions", b, orderBy, p)
}

func (s *Store) UpdatePermission(ctx context.Context, id int64, u rbac.PermissionUpdate) (rbac.Permission, error) {
	if u.Empty() {
		return rbac.Permission{}, apperr.BusinessRule("no fields to update")
	}

	var updated rbac.Permission
	err := s.db.GetContext(ctx, &updated, `
		UPDATE permissions SET
			permission_name = COALESCE($2, permission_name),
			description     = COALESCE($3, description)
		WHERE id = $1
		RETURNING `+permissionCols,
		id, u.PermissionName, u.Description)
	if err != nil {
		return rbac.Permission{}, classify(err, "permission")
	}
	return updated, nil
}

func (s *Store) DeletePermission(ctx context.Context, id int64) (rbac.Permission, error) {
	var deleted rbac.Permission
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM permissions WHERE id = $1 RETURNING `+permissionCols, id)
	if err != nil {
		return rbac.Permission{}, classify(err, "permission")
	}
	return deleted, nil
}

// --- Grants -----------------------------------------------------------------

func (s *Store) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var granted bool
		err := tx.GetContext(ctx, &granted,
			`SELECT EXISTS (SELECT 1 FROM role_permissions WHERE role_id = $1 AND permission_id = $2)`,
			roleID, permissionID)
		if err != nil {
			return fmt.Errorf("check grant exists: %w", err)
		}
		if granted {
			return apperr.Conflict("permission grant already exists")
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			roleID, permissionID)
		return err
	})
	return classify(err, "permission grant")
}

func (s *Store) RevokePermission(ctx context.Context, roleID, permissionID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID)
	if err != nil {
		return classify(err, "permission grant")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("permission grant not found")
	}
	return nil
}

func (s *Store) ListRolePermissions(ctx context.Context, roleID int64) ([]rbac.Permission, error) {
	perms := []rbac.Permission{}
	err := s.db.SelectContext(ctx, &perms, `
		SELECT p.id, p.permission_name, p.description, p.created_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.id`, roleID)
	if err != nil {
		return nil, classify(err, "permission")
	}
	return perms, nil
}
