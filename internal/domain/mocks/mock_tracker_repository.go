package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockTrackerRepository is a mock of TrackerRepository interface
type MockTrackerRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTrackerRepositoryMockRecorder
}

// MockTrackerRepositoryMockRecorder is the mock recorder for MockTrackerRepository
type MockTrackerRepositoryMockRecorder struct {
	mock *MockTrackerRepository
}

// NewMockTrackerRepository creates a new mock instance
func NewMockTrackerRepository(ctrl *gomock.Controller) *MockTrackerRepository {
	mock := &MockTrackerRepository{ctrl: ctrl}
	mock.recorder = &MockTrackerRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTrackerRepository) EXPECT() *MockTrackerRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockTrackerRepository) Create(ctx context.Context, tracker *domain.Tracker) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, tracker)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockTrackerRepositoryMockRecorder) Create(ctx, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockTrackerRepository)(nil).Create), ctx, tracker)
}

// GetByID mocks base method
func (m *MockTrackerRepository) GetByID(ctx context.Context, id int64) (*domain.Tracker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Tracker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockTrackerRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockTrackerRepository)(nil).GetByID), ctx, id)
}

// GetByName mocks base method
func (m *MockTrackerRepository) GetByName(ctx context.Context, owner, name string) (*domain.Tracker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByName", ctx, owner, name)
	ret0, _ := ret[0].(*domain.Tracker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByName indicates an expected call of GetByName
func (mr *MockTrackerRepositoryMockRecorder) GetByName(ctx, owner, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByName", reflect.TypeOf((*MockTrackerRepository)(nil).GetByName), ctx, owner, name)
}

// ListByOwner mocks base method
func (m *MockTrackerRepository) ListByOwner(ctx context.Context, ownerID int64, visibilities []domain.Visibility, cursor *domain.Cursor) ([]*domain.Tracker, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByOwner", ctx, ownerID, visibilities, cursor)
	ret0, _ := ret[0].([]*domain.Tracker)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListByOwner indicates an expected call of ListByOwner
func (mr *MockTrackerRepositoryMockRecorder) ListByOwner(ctx, ownerID, visibilities, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByOwner", reflect.TypeOf((*MockTrackerRepository)(nil).ListByOwner), ctx, ownerID, visibilities, cursor)
}

// Update mocks base method
func (m *MockTrackerRepository) Update(ctx context.Context, tracker *domain.Tracker) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, tracker)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockTrackerRepositoryMockRecorder) Update(ctx, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockTrackerRepository)(nil).Update), ctx, tracker)
}

// SetImportInProgress mocks base method
func (m *MockTrackerRepository) SetImportInProgress(ctx context.Context, trackerID int64, inProgress bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetImportInProgress", ctx, trackerID, inProgress)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetImportInProgress indicates an expected call of SetImportInProgress
func (mr *MockTrackerRepositoryMockRecorder) SetImportInProgress(ctx, trackerID, inProgress interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetImportInProgress", reflect.TypeOf((*MockTrackerRepository)(nil).SetImportInProgress), ctx, trackerID, inProgress)
}

// TouchUpdated mocks base method
func (m *MockTrackerRepository) TouchUpdated(ctx context.Context, trackerID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TouchUpdated", ctx, trackerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// TouchUpdated indicates an expected call of TouchUpdated
func (mr *MockTrackerRepositoryMockRecorder) TouchUpdated(ctx, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TouchUpdated", reflect.TypeOf((*MockTrackerRepository)(nil).TouchUpdated), ctx, trackerID)
}

// Delete mocks base method
func (m *MockTrackerRepository) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTrackerRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTrackerRepository)(nil).Delete), ctx, id)
}
