package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

const studentCols = "id, first_name, last_name, email, roll_number, branch, cgpa, graduation_year, phone, resume_url, created_at, updated_at"

var studentSortColumns = map[string]string{
	"created_at":      "created_at",
	"first_name":      "first_name",
	"cgpa":            "cgpa",
	"graduation_year": "graduation_year",
	"roll_number":     "roll_number",
}

func (s *Store) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	var created student.Student
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM students WHERE email = $1 OR roll_number = $2)`,
			st.Email, st.RollNumber)
		if err != nil {
			return fmt.Errorf("check student exists: %w", err)
		}
		if exists {
			return apperr.Conflict("student already exists")
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO students (first_name, last_name, email, roll_number, branch, cgpa, graduation_year, phone, resume_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING `+studentCols,
			st.FirstName, st.LastName, st.Email, st.RollNumber, st.Branch,
			st.CGPA, st.GraduationYear, st.Phone, st.ResumeURL)
	})
	if err != nil {
		return student.Student{}, classify(err, "student")
	}
	return created, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (student.Student, error) {
	var st student.Student
	err := s.db.GetContext(ctx, &st,
		`SELECT `+studentCols+` FROM students WHERE id = $1`, id)
	if err != nil {
		return student.Student{}, classify(err, "student")
	}
	return st, nil
}

func (s *Store) ListStudents(ctx context.Context, f storage.StudentFilter, p storage.ListParams) (storage.Page[student.Student], error) {
	p = p.Normalize()

	b := &listBuilder{}
	if f.Branch != "" {
		b.add("branch = $?", f.Branch)
	}
	if f.GraduationYear != 0 {
		b.add("graduation_year = $?", f.GraduationYear)
	}
	if f.Search != "" {
		b.add("(first_name ILIKE $? OR last_name ILIKE $? OR email ILIKE $? OR roll_number ILIKE $?)",
			"%"+f.Search+"%")
	}

	orderBy := sortColumn(studentSortColumns, p.SortBy, "created_at") + " " + p.SortOrder
	return listPage[student.Student](ctx, s.db, studentCols, "students", b, orderBy, p)
}

func (s *Store) UpdateStudent(ctx context.Context, id int64, u student.Update) (student.Student, error) {
	if u.Empty() {
		return student.Student{}, apperr.BusinessRule("no fields to update")
	}

	var updated student.Student
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("check student exists: %w", err)
		}
		if !exists {
			return apperr.NotFound("student not found")
		}

		if u.Email != nil {
			var taken bool
			if err := tx.GetContext(ctx, &taken,
				`SELECT EXISTS (SELECT 1 FROM students WHERE email = $1 AND id <> $2)`,
				*u.Email, id); err != nil {
				return fmt.Errorf("check student email: %w", err)
			}
			if taken {
				return apperr.Conflict("student already exists")
			}
		}

		// COALESCE keeps the stored value for omitted fields; a field cannot
		// be nulled out through this path.
		return tx.GetContext(ctx, &updated, `
			UPDATE students SET
				first_name      = COALESCE($2, first_name),
				last_name       = COALESCE($3, last_name),
				email           = COALESCE($4, email),
				branch          = COALESCE($5, branch),
				cgpa            = COALESCE($6, cgpa),
				graduation_year = COALESCE($7, graduation_year),
				phone           = COALESCE($8, phone),
				resume_url      = COALESCE($9, resume_url),
				updated_at      = $10
			WHERE id = $1
			RETURNING `+studentCols,
			id, u.FirstName, u.LastName, u.Email, u.Branch, u.CGPA,
			u.GraduationYear, u.Phone, u.ResumeURL, time.Now().UTC())
	})
	if err != nil {
		return student.Student{}, classify(err, "student")
	}
	return updated, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int64) (student.Student, error) {
	var deleted student.Student
	err := s.db.GetContext(ctx, &deleted,
		`DELETE FROM students WHERE id = $1 RETURNING `+studentCols, id)
	if err != nil {
		return student.Student{}, classify(err, "student")
	}
	return deleted, nil
}
