package audit

import (
	"strconv"
	"strings"
)

// Field izlenen tek bir alanın adı ve karşılaştırılabilir değeri
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Trackable audit diff'i üretilebilen entity'ler.
// AuditFields her çağrıda aynı sırada aynı alanları dönmelidir.
type Trackable interface {
	AuditFields() []Field
}

const nullValue = "null"

// String alan değeri
func String(name, value string) Field {
	return Field{Name: name, Value: value}
}

// IntPtr nil olabilen int alan
func IntPtr(name string, value *int) Field {
	if value == nil {
		return Field{Name: name, Null: true}
	}
	return Field{Name: name, Value: strconv.Itoa(*value)}
}

// FloatPtr nil olabilen float alan
func FloatPtr(name string, value *float64) Field {
	if value == nil {
		return Field{Name: name, Null: true}
	}
	return Field{Name: name, Value: strconv.FormatFloat(*value, 'f', -1, 64)}
}

func (f Field) display() string {
	if f.Null {
		return nullValue
	}
	return f.Value
}

func (f Field) equal(other Field) bool {
	if f.Null || other.Null {
		return f.Null == other.Null
	}
	return f.Value == other.Value
}

// Change tek bir alandaki değişiklik
type Change struct {
	Field string
	Old   string
	New   string
}

func (c Change) String() string {
	return c.Field + ": [" + c.Old + "] -> [" + c.New + "]"
}

// Changes iki durum arasındaki değişen alanları sırasıyla döner.
// Biri nil ise karşılaştırma yapılmaz.
func Changes(oldState, newState Trackable) []Change {
	if oldState == nil || newState == nil {
		return nil
	}

	oldFields := oldState.AuditFields()
	newByName := make(map[string]Field, len(oldFields))
	for _, f := range newState.AuditFields() {
		newByName[f.Name] = f
	}

	var changes []Change
	for _, of := range oldFields {
		nf, ok := newByName[of.Name]
		if !ok {
			nf = Field{Name: of.Name, Null: true}
		}
		if of.equal(nf) {
			continue
		}
		changes = append(changes, Change{Field: of.Name, Old: of.display(), New: nf.display()})
	}
	return changes
}

// Diff değişiklikleri "alan: [eski] -> [yeni]" formatında ", " ile birleştirir.
// Değişiklik yoksa boş string döner.
func Diff(oldState, newState Trackable) string {
	changes := Changes(oldState, newState)
	if len(changes) == 0 {
		return ""
	}

	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
