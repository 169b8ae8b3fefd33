package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-student-records/internal/audit"
	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/models"
)

// unserializable json.Marshal'ın hata verdiği bir state
type unserializable struct {
	Ch chan int
}

func (u unserializable) AuditFields() []audit.Field {
	return []audit.Field{audit.String("ch", "x")}
}

func adminCtx() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{Username: "admin", Role: "ADMIN", Email: "admin@x.com"})
}

func TestAuditService_LogCreate(t *testing.T) {
	// Arrange
	repo := new(MockAuditRepository)
	tx := &fakeTransactor{}
	observer := &recordingObserver{}
	service := NewAuditService(repo, tx).WithObserver(observer)
	student := &models.Student{ID: 1, Name: "Jane Doe", Email: "jane@x.com"}

	var saved *models.AuditLog
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.AuditLog) }).
		Return(nil)

	// Act
	service.LogCreate(adminCtx(), models.EntityStudent, 1, student)

	// Assert
	require.NotNil(t, saved)
	assert.Equal(t, models.ActionCreate, saved.Action)
	assert.Equal(t, "admin", saved.ChangedBy)
	assert.Nil(t, saved.OldValues)
	assert.Nil(t, saved.Diff)
	require.NotNil(t, saved.NewValues)
	assert.Contains(t, *saved.NewValues, `"name":"Jane Doe"`)
	assert.Equal(t, 1, tx.savepoints)
	assert.Equal(t, []string{"CREATE:success"}, observer.events)
}

func TestAuditService_LogUpdate_WritesDiff(t *testing.T) {
	repo := new(MockAuditRepository)
	service := NewAuditService(repo, &fakeTransactor{})
	before := &models.Student{ID: 1, Name: "Jane", Email: "jane@x.com", Year: intPtr(2)}
	after := &models.Student{ID: 1, Name: "Janet", Email: "jane@x.com", Year: intPtr(3)}

	var saved *models.AuditLog
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.AuditLog) }).
		Return(nil)

	service.LogUpdate(adminCtx(), models.EntityStudent, 1, before, after)

	require.NotNil(t, saved)
	assert.Equal(t, models.ActionUpdate, saved.Action)
	assert.Equal(t, "name: [Jane] -> [Janet], year: [2] -> [3]", *saved.Diff)
	assert.NotNil(t, saved.OldValues)
	assert.NotNil(t, saved.NewValues)
}

func TestAuditService_LogUpdate_NoChangeNoRecord(t *testing.T) {
	repo := new(MockAuditRepository)
	observer := &recordingObserver{}
	service := NewAuditService(repo, &fakeTransactor{}).WithObserver(observer)
	before := &models.Student{ID: 1, Name: "Jane", Email: "jane@x.com"}
	after := before.Clone()
	after.UpdatedBy = "someone-else"

	service.LogUpdate(adminCtx(), models.EntityStudent, 1, before, after)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"UPDATE:skipped"}, observer.events)
}

func TestAuditService_LogDelete_SystemActor(t *testing.T) {
	repo := new(MockAuditRepository)
	service := NewAuditService(repo, nil)

	var saved *models.AuditLog
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.AuditLog) }).
		Return(nil)

	service.LogDelete(context.Background(), models.EntityStudent, 9, &models.Student{ID: 9, Name: "Old"})

	require.NotNil(t, saved)
	assert.Equal(t, models.ActionDelete, saved.Action)
	assert.Equal(t, auth.SystemActor, saved.ChangedBy)
	assert.NotNil(t, saved.OldValues)
	assert.Nil(t, saved.NewValues)
	assert.Nil(t, saved.Diff)
}

func TestAuditService_PersistenceFailureIsSwallowed(t *testing.T) {
	repo := new(MockAuditRepository)
	observer := &recordingObserver{}
	service := NewAuditService(repo, &fakeTransactor{}).WithObserver(observer)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		service.LogCreate(adminCtx(), models.EntityStudent, 1, &models.Student{ID: 1})
	})
	assert.Equal(t, []string{"CREATE:error"}, observer.events)
}

func TestAuditService_SerializationFailurePlaceholder(t *testing.T) {
	repo := new(MockAuditRepository)
	service := NewAuditService(repo, nil)

	var saved *models.AuditLog
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.AuditLog) }).
		Return(nil)

	service.LogCreate(adminCtx(), "THING", 1, unserializable{Ch: make(chan int)})

	require.NotNil(t, saved)
	assert.Equal(t, "Error serializing", *saved.NewValues)
}

func TestAuditService_GetStudentLogs(t *testing.T) {
	repo := new(MockAuditRepository)
	service := NewAuditService(repo, nil)
	logs := []*models.AuditLog{{ID: 2, Action: models.ActionUpdate}, {ID: 1, Action: models.ActionCreate}}

	repo.On("GetByEntity", mock.Anything, models.EntityStudent, int64(5)).Return(logs, nil)

	result, err := service.GetStudentLogs(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, logs, result)
	repo.AssertExpectations(t)
}
