package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/student"
)

const languageCols = "id, student_id, language, proficiency"

const familyCols = "id, student_id, name, relation, occupation, phone"

const addressCols = "id, student_id, address_type, line1, line2, city, state, postal_code, country"

// requireStudent verifies the parent row inside the caller's transaction.
func requireStudent(ctx context.Context, tx *sqlx.Tx, studentID int64) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, studentID); err != nil {
		return fmt.Errorf("check student exists: %w", err)
	}
	if !exists {
		return apperr.NotFound("student not found")
	}
	return nil
}

func (s *Store) AddLanguage(ctx context.Context, l student.Language) (student.Language, error) {
	var created student.Language
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStudent(ctx, tx, l.StudentID); err != nil {
			return err
		}
		return tx.GetContext(ctx, &created, `
			INSERT INTO student_languages (student_id, language, proficiency)
			VALUES ($1, $2, $3)
			RETURNING `+languageCols,
			l.StudentID, l.Language, l.Proficiency)
	})
	if err != nil {
		return student.Language{}, classify(err, "student language")
	}
	return created, nil
}

func (s *Store) ListLanguages(ctx context.Context, studentID int64) ([]student.Language, error) {
	langs := []student.Language{}
	err := s.db.SelectContext(ctx, &langs,
		`SELECT `+languageCols+` FROM student_languages WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, classify(err, "student language")
	}
	return langs, nil
}

func (s *Store) UpdateLanguage(ctx context.Context, id int64, u student.LanguageUpdate) (student.Language, error) {
	if u.Empty() {
		return student.Language{}, apperr.BusinessRule("no fields to update")
	}

	var updated student.Language
	err := s.db.GetContext(ctx, &updated, `
		UPDATE student_languages SET
			language    = COALESCE($2, language),
			proficiency = COALESCE($3, proficiency)
		WHERE id = $1
		RETURNING `+languageCols,
		id, u.Language, u.Proficiency)
	if err != nil {
		return student.Language{}, classify(err, "student language")
	}
	return updated, nil
}

func (s *Store) DeleteLanguage(ctx context.Context, id int64) (student.Language, error) {
	var deleted student.Language
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM student_languages WHERE id = $1 RETURNING `+languageCols, id)
	if err != nil {
		return student.Language{}, classify(err, "student language")
	}
	return deleted, nil
}

func (s *Store) AddFamilyMember(ctx context.Context, m student.FamilyMember) (student.FamilyMember, error) {
	var created student.FamilyMember
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStudent(ctx, tx, m.StudentID); err != nil {
			return err
		}
		return tx.GetContext(ctx, &created, `
			INSERT INTO student_family (student_id, name, relation, occupation, phone)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+familyCols,
			m.StudentID, m.Name, m.Relation, m.Occupation, m.Phone)
	})
	if err != nil {
		return student.FamilyMember{}, classify(err, "family member")
	}
	return created, nil
}

func (s *Store) ListFamilyMembers(ctx context.Context, studentID int64) ([]student.FamilyMember, error) {
	members := []student.FamilyMember{}
	err := s.db.SelectContext(ctx, &members,
		`SELECT `+familyCols+` FROM student_family WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, classify(err, "family member")
	}
	return members, nil
}

func (s *Store) UpdateFamilyMember(ctx context.Context, id int64, u student.FamilyMemberUpdate) (student.FamilyMember, error) {
	if u.Empty() {
		return student.FamilyMember{}, apperr.BusinessRule("no fields to update")
	}

	var updated student.FamilyMember
	err := s.db.GetContext(ctx, &updated, `
		UPDATE student_family SET
			name       = COALESCE($2, name),
			relation   = COALESCE($3, relation),
			occupation = COALESCE($4, occupation),
			phone      = COALESCE($5, phone)
		WHERE id = $1
		RETURNING `+familyCols,
		id, u.Name, u.Relation, u.Occupation, u.Phone)
	if err != nil {
		return student.FamilyMember{}, classify(err, "family member")
	}
	return updated, nil
}

func (s *Store) DeleteFamilyMember(ctx context.Context, id int64) (student.FamilyMember, error) {
	var deleted student.FamilyMember
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM student_family WHERE id = $1 RETURNING `+familyCols, id)
	if err != nil {
		return student.FamilyMember{}, classify(err, "family member")
	}
	return deleted, nil
}

func (s *Store) AddAddress(ctx context.Context, a student.Address) (student.Address, error) {
	var created student.Address
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStudent(ctx, tx, a.StudentID); err != nil {
			return err
		}
		return tx.GetContext(ctx, &created, `
			INSERT INTO student_addresses (student_id, address_type, line1, line2, city, state, postal_code, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+addressCols,
			a.StudentID, a.AddressType, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country)
	})
	if err != nil {
		return student.Address{}, classify(err, "student address")
	}
	return created, nil
}

func (s *Store) ListAddresses(ctx context.Context, studentID int64) ([]student.Address, error) {
	addrs := []student.Address{}
	err := s.db.SelectContext(ctx, &addrs,
		`SELECT `+addressCols+` FROM student_addresses WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, classify(err, "student address")
	}
	return addrs, nil
}

func (s *Store) UpdateAddress(ctx context.Context, id int64, u student.AddressUpdate) (student.Address, error) {
	if u.Empty() {
		return student.Address{}, apperr.BusinessRule("no fields to update")
	}

	var updated student.Address
	err := s.db.GetContext(ctx, &updated, `
		UPDATE student_addresses SET
			address_type = COALESCE($2, address_type),
			line1        = COALESCE($3, line1),
			line2        = COALESCE($4, line2),
			city         = COALESCE($5, city),
			state        = COALESCE($6, state),
			postal_code  = COALESCE($7, postal_code),
			country      = COALESCE($8, country)
		WHERE id = $1
		RETURNING `+addressCols,
		id, u.AddressType, u.Line1, u.Line2, u.City, u.State, u.PostalCode, u.Country)
	if err != nil {
		return student.Address{}, classify(err, "student address")
	}
	return updated, nil
}

func (s *Store) DeleteAddress(ctx context.Context, id int64) (student.Address, error) {
	var deleted student.Address
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM student_addresses WHERE id = $1 RETURNING `+addressCols, id)
	if err != nil {
		return student.Address{}, classify(err, "student address")
	}
	return deleted, nil
}
