package models

import (
	"time"

	"github.com/onerilhan/go-student-records/internal/audit"
)

// EntityStudent audit kayıtlarında kullanılan entity adı
const EntityStudent = "STUDENT"

// Student öğrenci modelini temsil eder
type Student struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Department string    `json:"department" db:"department"`
	Year       *int      `json:"year" db:"year"`
	Address    string    `json:"address" db:"address"`
	Cgpa       *float64  `json:"cgpa" db:"cgpa"`
	CreatedBy  string    `json:"createdBy" db:"created_by"`
	UpdatedBy  string    `json:"updatedBy" db:"updated_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// AuditFields diff'te karşılaştırılan alanlar
func (s *Student) AuditFields() []audit.Field {
	return []audit.Field{
		audit.String("name", s.Name),
		audit.String("email", s.Email),
		audit.String("phone", s.Phone),
		audit.String("department", s.Department),
		audit.IntPtr("year", s.Year),
		audit.String("address", s.Address),
		audit.FloatPtr("cgpa", s.Cgpa),
	}
}

// Clone derin kopya döner (pointer alanlar dahil)
func (s *Student) Clone() *Student {
	c := *s
	if s.Year != nil {
		y := *s.Year
		c.Year = &y
	}
	if s.Cgpa != nil {
		g := *s.Cgpa
		c.Cgpa = &g
	}
	return &c
}

// ToResponse entity'yi API yanıtına çevirir
func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Department: s.Department,
		Year:       s.Year,
		Address:    s.Address,
		Cgpa:       s.Cgpa,
		CreatedBy:  s.CreatedBy,
		UpdatedBy:  s.UpdatedBy,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// StudentRequest öğrenci oluşturma/güncelleme isteği
type StudentRequest struct {
	Name       string   `json:"name" validate:"required,notblank,min=2,max=50"`
	Email      string   `json:"email" validate:"required,email,max=255"`
	Phone      string   `json:"phone" validate:"omitempty,max=15"`
	Department string   `json:"department" validate:"omitempty,max=100"`
	Year       *int     `json:"year" validate:"omitempty,min=1,max=10"`
	Address    string   `json:"address" validate:"omitempty,max=255"`
	Cgpa       *float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
}

// ToEntity istekten yeni bir entity oluşturur
func (r *StudentRequest) ToEntity() *Student {
	s := &Student{}
	r.ApplyTo(s)
	return s
}

// ApplyTo değiştirilebilir tüm alanları koşulsuz olarak entity'ye yazar
func (r *StudentRequest) ApplyTo(s *Student) {
	s.Name = r.Name
	s.Email = r.Email
	s.Phone = r.Phone
	s.Department = r.Department
	s.Year = r.Year
	s.Address = r.Address
	s.Cgpa = r.Cgpa
}

// StudentResponse API'ye dönen öğrenci
type StudentResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Year       *int      `json:"year"`
	Address    string    `json:"address"`
	Cgpa       *float64  `json:"cgpa"`
	CreatedBy  string    `json:"createdBy"`
	UpdatedBy  string    `json:"updatedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToStudentResponses liste dönüşümü
func ToStudentResponses(students []*Student) []*StudentResponse {
	out := make([]*StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, s.ToResponse())
	}
	return out
}
