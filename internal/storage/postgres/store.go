// Package postgres implements the storage interfaces backed by PostgreSQL.
//
// Multi-statement writes run inside explicit transactions: begin, pre-checks,
// main statement, commit, with rollback on any failure. Single-statement
// reads bypass transactions. Uniqueness pre-checks inside the transaction are
// a best-effort courtesy; the table constraints remain the final authority
// and constraint violations are classified into error kinds here.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/storage"
)

// Postgres error codes surfaced as tagged kinds.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Store implements every storage interface over a shared pool handle.
type Store struct {
	db *sqlx.DB
}

var _ storage.StudentStore = (*Store)(nil)
var _ storage.ProfileStore = (*Store)(nil)
var _ storage.CompanyStore = (*Store)(nil)
var _ storage.JobStore = (*Store)(nil)
var _ storage.ApplicationStore = (*Store)(nil)
var _ storage.RBACStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided pool handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// classify converts driver errors into tagged kinds. sql.ErrNoRows becomes
// NotFound for the named entity; constraint violations become Conflict or
// Referential. Anything else passes through for the handler to treat as
// internal.
func classify(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s not found", entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return apperr.Conflict("%s already exists", entity)
		case pgForeignKeyViolation:
			return apperr.Referential("%s references a missing record", entity)
		}
	}
	return err
}

// listBuilder accumulates AND-ed predicates with positional placeholders.
// Conditions use "$?" where the placeholder index belongs, so one condition
// may reference its argument more than once.
type listBuilder struct {
	conds []string
	args  []any
}

func (b *listBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "$?", fmt.Sprintf("$%d", len(b.args))))
}

func (b *listBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// sortColumn resolves the requested sort field against the entity's
// allow-list, falling back to the default column. This is the only place a
// caller-supplied value reaches an ORDER BY.
func sortColumn(allowed map[string]string, requested, fallback string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return fallback
}

// listPage runs the shared count + page queries for a list operation. The
// count query shares the WHERE clause and runs before LIMIT/OFFSET so
// total_count is independent of the page position.
func listPage[T any](ctx context.Context, db *sqlx.DB, selectCols, table string, b *listBuilder, orderBy string, p storage.ListParams) (storage.Page[T], error) {
	var page storage.Page[T]

	countQuery := "SELECT COUNT(*) FROM " + table + b.whereClause()
	var total int
	if err := db.GetContext(ctx, &total, countQuery, b.args...); err != nil {
		return page, fmt.Errorf("count %s: %w", table, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		selectCols, table, b.whereClause(), orderBy, len(b.args)+1, len(b.args)+2)
	args := append(append([]any{}, b.args...), p.Limit, p.Offset())

	items := []T{}
	if err := db.SelectContext(ctx, &items, query, args...); err != nil {
		return page, fmt.Errorf("list %s: %w", table, err)
	}

	page.Items = items
	page.Pagination = storage.NewPagination(p.Page, p.Limit, total)
	return page, nil
}
