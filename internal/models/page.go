package models

import (
	"fmt"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDirection sıralama yönü
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// studentSortColumns sort parametresinde izin verilen alanlar ve kolonları
var studentSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"department": "department",
	"year":       "year",
	"cgpa":       "cgpa",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// PageRequest offset tabanlı sayfalama isteği. Page 0'dan başlar.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
}

// DefaultPageRequest varsayılan sayfalama
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, SortField: "id", SortDir: SortAsc}
}

// Offset SQL OFFSET değeri
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderBy whitelist'ten geçen ORDER BY ifadesi. Eşitlikte id ile sıralanır.
func (p PageRequest) OrderBy() string {
	column, ok := studentSortColumns[p.SortField]
	if !ok {
		column = "id"
	}
	dir := SortAsc
	if p.SortDir == SortDesc {
		dir = SortDesc
	}
	if column == "id" {
		return fmt.Sprintf("id %s", dir)
	}
	return fmt.Sprintf("%s %s, id ASC", column, dir)
}

// ParseSort "alan,yön" formatını çözer. Bilinmeyen alan veya yön hata döner.
func ParseSort(raw string) (string, SortDirection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "id", SortAsc, nil
	}

	field, dirPart, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if _, ok := studentSortColumns[field]; !ok {
		return "", "", fmt.Errorf("geçersiz sıralama alanı: %s", field)
	}

	switch strings.ToUpper(strings.TrimSpace(dirPart)) {
	case "", "ASC":
		return field, SortAsc, nil
	case "DESC":
		return field, SortDesc, nil
	default:
		return "", "", fmt.Errorf("geçersiz sıralama yönü: %s", dirPart)
	}
}

// Page sayfalanmış sonuç
type Page[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
	Empty            bool  `json:"empty"`
}

// NewPage toplam kayıt sayısından sayfa bilgilerini hesaplar
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:          content,
		Page:             req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}

// MapPage sayfa içeriğini dönüştürür
func MapPage[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return &Page[R]{
		Content:          content,
		Page:             p.Page,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		First:            p.First,
		Last:             p.Last,
		NumberOfElements: p.NumberOfElements,
		Empty:            p.Empty,
	}
}

// StudentSearch arama filtreleri. Boş alan filtre uygulanmaz demektir.
type StudentSearch struct {
	Name  string
	Email string
}

// HasFilters en az bir filtre dolu mu
func (s StudentSearch) HasFilters() bool {
	return strings.TrimSpace(s.Name) != "" || strings.TrimSpace(s.Email) != ""
}
