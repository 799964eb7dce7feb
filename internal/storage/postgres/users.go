package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
)

const userCols = "id, email, password_hash, role_id, student_id, created_at, updated_at"

func (s *Store) CreateUser(ctx context.Context, u rbac.User) (rbac.User, error) {
	var created rbac.User
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, u.Email)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}
		if exists {
			return apperr.Conflict("user already exists")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO users (email, password_hash, role_id, student_id)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userCols,
			u.Email, u.PasswordHash, u.RoleID, u.StudentID)
	})
	if err != nil {
		return rbac.User{}, classify(err, "user")
	}
	return created, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (rbac.User, error) {
	var u rbac.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	if err != nil {
		return rbac.User{}, classify(err, "user")
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (rbac.User, error) {
	var u rbac.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE email = $1`, email)
	if err != nil {
		return rbac.User{}, classify(err, "user")
	}
	return u, nil
}
