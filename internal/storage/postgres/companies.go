package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/storage"
)

const companyCols = "id, company_name, industry, website, logo_url, description, contact_email, created_at, updated_at"

var companySortColumns = map[string]string{
	"created_at":   "created_at",
	"company_name": "company_name",
	"industry":     "industry",
}

func (s *Store) CreateCompany(ctx context.Context, c company.Company) (company.Company, error) {
	var created company.Company
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM companies WHERE company_name = $1)`, c.CompanyName)
		if err != nil {
			return fmt.Errorf("check company exists: %w", err)
		}
		if exists {
			return apperr.Conflict("company already exists")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO companies (company_name, industry, website, logo_url, description, contact_email)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+companyCols,
			c.CompanyName, c.Industry, c.Website, c.LogoURL, c.Description, c.ContactEmail)
	})
	if err != nil {
		return company.Company{}, classify(err, "company")
	}
	return created, nil
}

func (s *Store) GetCompany(ctx context.Context, id int64) (company.Company, error) {
	var c company.Company
	err := s.db.GetContext(ctx, &c,
		`SELECT `+companyCols+` FROM companies WHERE id = $1`, id)
	if err != nil {
		return company.Company{}, classify(err, "company")
	}
	return c, nil
}

func (s *Store) ListCompanies(ctx context.Context, f storage.CompanyFilter, p storage.ListParams) (storage.Page[company.Company], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.Industry != "" {
		b.add("industry = $?", f.Industry)
	}
	if f.Search != "" {
		b.add("company_name ILIKE $?", "%"+f.Search+"%")
	}

	orderBy := sortColumn(companySortColumns, p.SortBy, "created_at") + " " + p.SortOrder
	return listPage[company.Company](ctx, s.db, companyCols, "companies", b, orderBy, p)
}

func (s *Store) UpdateCompany(ctx context.Context, id int64, u company.Update) (company.Company, error) {
	if u.Empty() {
		return company.Company{}, apperr.BusinessRule("no fields to update")
	}

	var updated company.Company
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("check company exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("company not found")
		}

		if u.CompanyName != nil {
			var taken bool
			if err := tx.GetContext(ctx, &taken,
				`SELECT EXISTS (SELECT 1 FROM companies WHERE company_name = $1 AND id <> $2)`,
				*u.CompanyName, id); err != nil {
				return fmt.Errorf("check company name: %w", err)
			}
			if taken {
				return apperr.Conflict("company already exists")
			}
		}

		return tx.GetContext(ctx, &updated, `
			UPDATE companies SET
				company_name  = COALESCE($2, company_name),
				industry      = COALESCE($3, industry),
				website       = COALESCE($4, website),
				logo_url      = COALESCE($5, logo_url),
				description   = COALESCE($6, description),
				contact_email = COALESCE($7, contact_email),
				updated_at    = $8
			WHERE id = $1
			RETURNING `+companyCols,
			id, u.CompanyName, u.Industry, u.Website, u.LogoURL,
			u.Description, u.ContactEmail, time.Now().UTC())
	})
	if err != nil {
		return company.Company{}, classify(err, "company")
	}
	return updated, nil
}

func (s *Store) DeleteCompany(ctx context.Context, id int64) (company.Company, error) {
	var deleted company.Company
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM companies WHERE id = $1 RETURNING `+companyCols, id)
	if err != nil {
		return company.Company{}, classify(err, "company")
	}
	return deleted, nil
}
