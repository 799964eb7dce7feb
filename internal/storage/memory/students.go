package memory

import (
	"context"
	"strings"
	"time"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

func (m *Memory) CreateStudent(_ context.Context, st student.Student) (student.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.students {
		if existing.Email == st.Email || existing.RollNumber == st.RollNumber {
			return student.Student{}, apperr.Conflict("student already exists")
		}
	}

	st.ID = m.nextIDLocked()
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	m.students[st.ID] = st
	return st, nil
}

func (m *Memory) GetStudent(_ context.Context, id int64) (student.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.students[id]
	if !ok {
		return student.Student{}, apperr.NotFound("student not found")
	}
	return st, nil
}

func (m *Memory) ListStudents(_ context.Context, f storage.StudentFilter, p storage.ListParams) (storage.Page[student.Student], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = p.Normalize()

	matched := []student.Student{}
	for _, st := range m.students {
		if f.Branch != "" && st.Branch != f.Branch {
			continue
		}
		if f.GraduationYear != 0 && st.GraduationYear != f.GraduationYear {
			continue
		}
		if f.Search != "" && !matchesStudent(st, f.Search) {
			continue
		}
		matched = append(matched, st)
	}

	sortItems(matched, studentSortKeys, p, func(s student.Student) int64 { return s.ID })
	return paginate(matched, p), nil
}

var studentSortKeys = map[string]func(a, b student.Student) bool{
	"created_at":      func(a, b student.Student) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"first_name":      func(a, b student.Student) bool { return a.FirstName < b.FirstName },
	"cgpa":            func(a, b student.Student) bool { return a.CGPA < b.CGPA },
	"graduation_year": func(a, b student.Student) bool { return a.GraduationYear < b.GraduationYear },
	"roll_number":     func(a, b student.Student) bool { return a.RollNumber < b.RollNumber },
}

func matchesStudent(st student.Student, search string) bool {
	search = strings.ToLower(search)
	for _, field := range []string{st.FirstName, st.LastName, st.Email, st.RollNumber} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (m *Memory) UpdateStudent(_ context.Context, id int64, u student.Update) (student.Student, error) {
	if u.Empty() {
		return student.Student{}, apperr.BusinessRule("no fields to update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.students[id]
	if !ok {
		return student.Student{}, apperr.NotFound("student not found")
	}

	if u.Email != nil {
		for otherID, other := range m.students {
			if otherID != id && other.Email == *u.Email {
				return student.Student{}, apperr.Conflict("student already exists")
			}
		}
		st.Email = *u.Email
	}
	if u.FirstName != nil {
		st.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		st.LastName = *u.LastName
	}
	if u.Branch != nil {
		st.Branch = *u.Branch
	}
	if u.CGPA != nil {
		st.CGPA = *u.CGPA
	}
	if u.GraduationYear != nil {
		st.GraduationYear = *u.GraduationYear
	}
	if u.Phone != nil {
		st.Phone = *u.Phone
	}
	if u.ResumeURL != nil {
		st.ResumeURL = *u.ResumeURL
	}
	st.UpdatedAt = time.Now().UTC()

	m.students[id] = st
	return st, nil
}

func (m *Memory) DeleteStudent(_ context.Context, id int64) (student.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.students[id]
	if !ok {
		return student.Student{}, apperr.NotFound("student not found")
	}
	delete(m.students, id)
	return st, nil
}

// --- Profile sub-entities ---------------------------------------------------

func (m *Memory) AddLanguage(_ context.Context, l student.Language) (student.Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[l.StudentID]; !ok {
		return student.Language{}, apperr.NotFound("student not found")
	}
	l.ID = m.nextIDLocked()
	m.languages[l.ID] = l
	return l, nil
}

func (m *Memory) ListLanguages(_ context.Context, studentID int64) ([]student.Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []student.Language{}
	for _, l := range m.languages {
		if l.StudentID == studentID {
			result = append(result, l)
		}
	}
	sortByID(result, func(l student.Language) int64 { return l.ID }, "ASC")
	return result, nil
}

func (m *Memory) UpdateLanguage(_ context.Context, id int64, u student.LanguageUpdate) (student.Language, error) {
	if u.Empty() {
		return student.Language{}, apperr.BusinessRule("no fields to update")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.languages[id]
	if !ok {
		return student.Language{}, apperr.NotFound("student language not found")
	}
	if u.Language != nil {
		l.Language = *u.Language
	}
	if u.Proficiency != nil {
		l.Proficiency = *u.Proficiency
	}
	m.languages[id] = l
	return l, nil
}

func (m *Memory) DeleteLanguage(_ context.Context, id int64) (student.Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.languages[id]
	if !ok {
		return student.Language{}, apperr.NotFound("student language not found")
	}
	delete(m.languages, id)
	return l, nil
}

func (m *Memory) AddFamilyMember(_ context.Context, fm student.FamilyMember) (student.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[fm.StudentID]; !ok {
		return student.FamilyMember{}, apperr.NotFound("student not found")
	}
	fm.ID = m.nextIDLocked()
	m.family[fm.ID] = fm
	return fm, nil
}

func (m *Memory) ListFamilyMembers(_ context.Context, studentID int64) ([]student.FamilyMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []student.FamilyMember{}
	for _, fm := range m.family {
		if fm.StudentID == studentID {
			result = append(result, fm)
		}
	}
	sortByID(result, func(fm student.FamilyMember) int64 { return fm.ID }, "ASC")
	return result, nil
}

func (m *Memory) UpdateFamilyMember(_ context.Context, id int64, u student.FamilyMemberUpdate) (student.FamilyMember, error) {
	if u.Empty() {
		return student.FamilyMember{}, apperr.BusinessRule("no fields to update")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	fm, ok := m.family[id]
	if !ok {
		return student.FamilyMember{}, apperr.NotFound("family member not found")
	}
	if u.Name != nil {
		fm.Name = *u.Name
	}
	if u.Relation != nil {
		fm.Relation = *u.Relation
	}
	if u.Occupation != nil {
		fm.Occupation = *u.Occupation
	}
	if u.Phone != nil {
		fm.Phone = *u.Phone
	}
	m.family[id] = fm
	return fm, nil
}

func (m *Memory) DeleteFamilyMember(_ context.Context, id int64) (student.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fm, ok := m.family[id]
	if !ok {
		return student.FamilyMember{}, apperr.NotFound("family member not found")
	}
	delete(m.family, id)
	return fm, nil
}

func (m *Memory) AddAddress(_ context.Context, a student.Address) (student.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[a.StudentID]; !ok {
		return student.Address{}, apperr.NotFound("student not found")
	}
	a.ID = m.nextIDLocked()
	m.addresses[a.ID] = a
	return a, nil
}

func (m *Memory) ListAddresses(_ context.Context, studentID int64) ([]student.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []student.Address{}
	for _, a := range m.addresses {
		if a.StudentID == studentID {
			result = append(result, a)
		}
	}
	sortByID(result, func(a student.Address) int64 { return a.ID }, "ASC")
	return result, nil
}

func (m *Memory) UpdateAddress(_ context.Context, id int64, u student.AddressUpdate) (student.Address, error) {
	if u.Empty() {
		return student.Address{}, apperr.BusinessRule("no fields to update")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.addresses[id]
	if !ok {
		return student.Address{}, apperr.NotFound("student address not found")
	}
	if u.AddressType != nil {
		a.AddressType = *u.AddressType
	}
	if u.Line1 != nil {
		a.Line1 = *u.Line1
	}
	if u.Line2 != nil {
		a.Line2 = *u.Line2
	}
	if u.City != nil {
		a.City = *u.City
	}
	if u.State != nil {
		a.State = *u.State
	}
	if u.PostalCode != nil {
		a.PostalCode = *u.PostalCode
	}
	if u.Country != nil {
		a.Country = *u.Country
	}
	m.addresses[id] = a
	return a, nil
}

func (m *Memory) DeleteAddress(_ context.Context, id int64) (student.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.addresses[id]
	if !ok {
		return student.Address{}, apperr.NotFound("student address not found")
	}
	delete(m.addresses, id)
	return a, nil
}
