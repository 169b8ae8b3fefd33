package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-student-records/internal/models"
)

var studentRowColumns = []string{
	"id", "name", "email", "phone", "department", "year", "address", "cgpa",
	"created_by", "updated_by", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, mock
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestStudentRepository_Create(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students")).
		WithArgs("Jane Doe", "jane@x.com", "", "", int64(2), "", 8.5, "admin", "admin").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(1, "Jane Doe", "jane@x.com", "", "", 2, "", 8.5, "admin", "admin", now, now))

	created, err := repo.Create(context.Background(), &models.Student{
		Name: "Jane Doe", Email: "jane@x.com", Year: intPtr(2), Cgpa: floatPtr(8.5),
		CreatedBy: "admin", UpdatedBy: "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 2, *created.Year)
	assert.Equal(t, 8.5, *created.Cgpa)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Create_DuplicateEmail(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "students_email_key"})

	_, err := repo.Create(context.Background(), &models.Student{Name: "Jane", Email: "jane@x.com"})

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStudentRepository_GetByID_NullableColumns(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(5, "Ali", "ali@x.com", "", "CS", nil, "", nil, "SYSTEM", "SYSTEM", now, now))

	s, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Nil(t, s.Year)
	assert.Nil(t, s.Cgpa)
	assert.Equal(t, "CS", s.Department)
}

func TestStudentRepository_GetByID_NotFound(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentRepository_EmailLookupIgnoresCase(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE LOWER(email) = LOWER($1)")).
		WithArgs("Jane@X.com").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(1, "Jane", "jane@x.com", "", "", nil, "", nil, "SYSTEM", "SYSTEM", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = LOWER($1))")).
		WithArgs("JANE@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	s, err := repo.GetByEmail(context.Background(), "Jane@X.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", s.Email)

	exists, err := repo.ExistsByEmail(context.Background(), "JANE@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_CgpaKeepsFullPrecision(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students")).
		WithArgs("Jane Doe", "jane@x.com", "", "", nil, "", 8.555, "admin", "admin").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(1, "Jane Doe", "jane@x.com", "", "", nil, "", 8.555, "admin", "admin", now, now))

	created, err := repo.Create(context.Background(), &models.Student{
		Name: "Jane Doe", Email: "jane@x.com", Cgpa: floatPtr(8.555),
		CreatedBy: "admin", UpdatedBy: "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, 8.555, *created.Cgpa)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Update_NotFound(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students")).
		WillReturnRows(sqlmock.NewRows(studentRowColumns))

	_, err := repo.Update(context.Background(), &models.Student{ID: 3, Name: "x", Email: "x@x.com"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentRepository_Delete(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Search_BothFilters(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM students WHERE name ILIKE $1 ESCAPE '\' AND email ILIKE $2 ESCAPE '\'`)).
		WithArgs("%jane%", `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY name DESC, id ASC LIMIT $3 OFFSET $4`)).
		WithArgs("%jane%", `%50\%\_off%`, 10, 20).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(1, "Jane", "50%_off@x.com", "", "", nil, "", nil, "SYSTEM", "SYSTEM", now, now))

	students, total, err := repo.Search(context.Background(),
		models.StudentSearch{Name: "jane", Email: "50%_off"},
		models.PageRequest{Page: 2, Size: 10, SortField: "name", SortDir: models.SortDesc})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Search_NoFilters(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewStudentRepository(conn)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM students$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM students ORDER BY id ASC LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(studentRowColumns))

	students, total, err := repo.Search(context.Background(), models.StudentSearch{}, models.DefaultPageRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "%abc%", containsPattern("  abc "))
}
