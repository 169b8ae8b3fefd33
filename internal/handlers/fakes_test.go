package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
	"github.com/onerilhan/go-student-records/internal/repository"
)

// memStudentRepo testler için bellek içi öğrenci deposu
type memStudentRepo struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
}

var _ interfaces.StudentRepositoryInterface = (*memStudentRepo)(nil)

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{students: map[int64]*models.Student{}}
}

func (r *memStudentRepo) Create(ctx context.Context, s *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.students {
		// repository gibi LOWER(email) tekilliği
		if strings.EqualFold(existing.Email, s.Email) {
			return nil, repository.ErrDuplicate
		}
	}
	r.nextID++
	c := s.Clone()
	c.ID = r.nextID
	r.students[c.ID] = c
	return c.Clone(), nil
}

func (r *memStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if strings.EqualFold(s.Email, email) {
			return s.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memStudentRepo) Update(ctx context.Context, s *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[s.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.students[s.ID] = s.Clone()
	return s.Clone(), nil
}

func (r *memStudentRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *memStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(func(*models.Student) bool { return true }), nil
}

func (r *memStudentRepo) Search(ctx context.Context, filter models.StudentSearch, page models.PageRequest) ([]*models.Student, int64, error) {
	name := strings.ToLower(filter.Name)
	email := strings.ToLower(filter.Email)
	all := r.list(func(s *models.Student) bool {
		return strings.Contains(strings.ToLower(s.Name), name) && strings.Contains(strings.ToLower(s.Email), email)
	})
	if page.SortDir == models.SortDesc {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}

	total := int64(len(all))
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return all[start:end], total, nil
}

func (r *memStudentRepo) list(keep func(*models.Student) bool) []*models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Student{}
	for _, s := range r.students {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// memUserRepo bellek içi kullanıcı deposu
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

var _ interfaces.UserRepositoryInterface = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return nil, repository.ErrDuplicate
	}
	r.nextID++
	c := *u
	c.ID = r.nextID
	r.users[u.Username] = &c
	return &c, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

// memAuditRepo bellek içi audit deposu
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

var _ interfaces.AuditRepositoryInterface = (*memAuditRepo)(nil)

func (r *memAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *entry
	c.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, &c)
	entry.ID = c.ID
	return nil
}

func (r *memAuditRepo) GetAll(ctx context.Context) ([]*models.AuditLog, error) {
	return r.filter(func(*models.AuditLog) bool { return true }), nil
}

func (r *memAuditRepo) GetByEntity(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error) {
	return r.filter(func(e *models.AuditLog) bool {
		return e.EntityName == entityName && e.EntityID == entityID
	}), nil
}

// filter en yeni önce döner
func (r *memAuditRepo) filter(keep func(*models.AuditLog) bool) []*models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.AuditLog{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if keep(r.entries[i]) {
			c := *r.entries[i]
			out = append(out, &c)
		}
	}
	return out
}

// passthroughTx fonksiyonları transaction açmadan çalıştırır
type passthroughTx struct{}

var _ db.Transactor = passthroughTx{}

func (passthroughTx) WithTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return fn(ctx)
}

func (passthroughTx) WithSavepoint(ctx context.Context, name string, fn db.TransactionFunc) error {
	return fn(ctx)
}
