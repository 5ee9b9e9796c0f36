package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockAccessRepository is a mock of AccessRepository interface
type MockAccessRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAccessRepositoryMockRecorder
}

// MockAccessRepositoryMockRecorder is the mock recorder for MockAccessRepository
type MockAccessRepositoryMockRecorder struct {
	mock *MockAccessRepository
}

// NewMockAccessRepository creates a new mock instance
func NewMockAccessRepository(ctrl *gomock.Controller) *MockAccessRepository {
	mock := &MockAccessRepository{ctrl: ctrl}
	mock.recorder = &MockAccessRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAccessRepository) EXPECT() *MockAccessRepositoryMockRecorder {
	return m.recorder
}

// GetForUser mocks base method
func (m *MockAccessRepository) GetForUser(ctx context.Context, trackerID, userID int64) (*domain.UserAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetForUser", ctx, trackerID, userID)
	ret0, _ := ret[0].(*domain.UserAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetForUser indicates an expected call of GetForUser
func (mr *MockAccessRepositoryMockRecorder) GetForUser(ctx, trackerID, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetForUser", reflect.TypeOf((*MockAccessRepository)(nil).GetForUser), ctx, trackerID, userID)
}

// Upsert mocks base method
func (m *MockAccessRepository) Upsert(ctx context.Context, access *domain.UserAccess) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Upsert", ctx, access)
	ret0, _ := ret[0].(error)
	return ret0
}

// Upsert indicates an expected call of Upsert
func (mr *MockAccessRepositoryMockRecorder) Upsert(ctx, access interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Upsert", reflect.TypeOf((*MockAccessRepository)(nil).Upsert), ctx, access)
}

// Delete mocks base method
func (m *MockAccessRepository) Delete(ctx context.Context, trackerID, userID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, trackerID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockAccessRepositoryMockRecorder) Delete(ctx, trackerID, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockAccessRepository)(nil).Delete), ctx, trackerID, userID)
}

// ListForTracker mocks base method
func (m *MockAccessRepository) ListForTracker(ctx context.Context, trackerID int64) ([]*domain.UserAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForTracker", ctx, trackerID)
	ret0, _ := ret[0].([]*domain.UserAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListForTracker indicates an expected call of ListForTracker
func (mr *MockAccessRepositoryMockRecorder) ListForTracker(ctx, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForTracker", reflect.TypeOf((*MockAccessRepository)(nil).ListForTracker), ctx, trackerID)
}
