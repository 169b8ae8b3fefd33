package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-student-records/internal/audit"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestStudentRequest_ToEntity(t *testing.T) {
	req := &StudentRequest{
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Year:  intPtr(2),
		Cgpa:  floatPtr(8.5),
	}

	s := req.ToEntity()

	assert.Equal(t, "Jane Doe", s.Name)
	assert.Equal(t, "jane@x.com", s.Email)
	assert.Equal(t, 2, *s.Year)
	assert.Equal(t, 8.5, *s.Cgpa)
	assert.Empty(t, s.Phone)
}

func TestStudentRequest_ApplyToReplacesAllFields(t *testing.T) {
	s := &Student{ID: 7, Name: "Old", Email: "old@x.com", Phone: "555", Year: intPtr(3), CreatedBy: "admin"}
	req := &StudentRequest{Name: "New", Email: "new@x.com"}

	req.ApplyTo(s)

	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "New", s.Name)
	assert.Equal(t, "", s.Phone)
	assert.Nil(t, s.Year)
	assert.Equal(t, "admin", s.CreatedBy)
}

func TestStudent_CloneIsIndependent(t *testing.T) {
	s := &Student{Name: "Jane", Year: intPtr(2), Cgpa: floatPtr(8.5)}

	c := s.Clone()
	*c.Year = 4
	c.Name = "Janet"

	assert.Equal(t, 2, *s.Year)
	assert.Equal(t, "Jane", s.Name)
}

func TestStudent_AuditDiff(t *testing.T) {
	before := &Student{Name: "Jane", Email: "jane@x.com", Year: intPtr(2), Cgpa: floatPtr(8.5)}
	after := before.Clone()
	after.Department = "CS"
	after.Cgpa = floatPtr(9)

	assert.Equal(t, "department: [] -> [CS], cgpa: [8.5] -> [9]", audit.Diff(before, after))
}

func TestValidate_StudentRequest(t *testing.T) {
	t.Run("geçerli istek", func(t *testing.T) {
		req := &StudentRequest{Name: "Jane Doe", Email: "jane@x.com", Year: intPtr(2), Cgpa: floatPtr(0)}
		assert.NoError(t, Validate(req))
	})

	t.Run("hatalı alanlar JSON adıyla döner", func(t *testing.T) {
		req := &StudentRequest{Name: "J", Email: "not-an-email", Year: intPtr(11), Cgpa: floatPtr(10.5)}

		err := Validate(req)
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs, "name")
		assert.Contains(t, verrs, "email")
		assert.Contains(t, verrs, "year")
		assert.Contains(t, verrs, "cgpa")
		assert.Equal(t, "en az 2 karakter olmalıdır", verrs["name"])
		assert.Equal(t, "en fazla 10 olabilir", verrs["year"])
	})

	t.Run("sınır değerler", func(t *testing.T) {
		req := &StudentRequest{Name: "Jo", Email: "a@b.co", Year: intPtr(10), Cgpa: floatPtr(10)}
		assert.NoError(t, Validate(req))
	})

	t.Run("sadece boşluktan oluşan isim", func(t *testing.T) {
		err := Validate(&StudentRequest{Name: "   ", Email: "jane@x.com"})
		require.Error(t, err)
		assert.Equal(t, "boş olamaz", err.(ValidationErrors)["name"])
	})

	t.Run("cgpa hassasiyeti sınırlanmaz", func(t *testing.T) {
		assert.NoError(t, Validate(&StudentRequest{Name: "Jane", Email: "jane@x.com", Cgpa: floatPtr(8.555)}))
	})

	t.Run("telefon uzunluğu", func(t *testing.T) {
		req := &StudentRequest{Name: "Jane", Email: "jane@x.com", Phone: "1234567890123456"}
		err := Validate(req)
		require.Error(t, err)
		assert.Contains(t, err.(ValidationErrors), "phone")
	})
}

func TestValidate_RegisterRequest(t *testing.T) {
	err := Validate(&RegisterRequest{Username: "ab", Password: "123", Email: "x"})
	require.Error(t, err)

	verrs := err.(ValidationErrors)
	assert.Len(t, verrs, 3)
	assert.Equal(t, "zorunludur", Validate(&RegisterRequest{}).(ValidationErrors)["username"])
}

func TestRole(t *testing.T) {
	assert.True(t, RoleLecturer.IsValid())
	assert.False(t, Role("ROOT").IsValid())
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.True(t, RoleStaff.IsPrivileged())
	assert.False(t, RoleStudent.IsPrivileged())
}
