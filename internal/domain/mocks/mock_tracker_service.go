package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockTrackerService is a mock of TrackerService interface
type MockTrackerService struct {
	ctrl     *gomock.Controller
	recorder *MockTrackerServiceMockRecorder
}

// MockTrackerServiceMockRecorder is the mock recorder for MockTrackerService
type MockTrackerServiceMockRecorder struct {
	mock *MockTrackerService
}

// NewMockTrackerService creates a new mock instance
func NewMockTrackerService(ctrl *gomock.Controller) *MockTrackerService {
	mock := &MockTrackerService{ctrl: ctrl}
	mock.recorder = &MockTrackerServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTrackerService) EXPECT() *MockTrackerServiceMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockTrackerService) Create(ctx context.Context, owner *domain.User, req *domain.CreateTrackerRequest) (*domain.Tracker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, owner, req)
	ret0, _ := ret[0].(*domain.Tracker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create
func (mr *MockTrackerServiceMockRecorder) Create(ctx, owner, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockTrackerService)(nil).Create), ctx, owner, req)
}

// Get mocks base method
func (m *MockTrackerService) Get(ctx context.Context, viewer *domain.User, owner, name string) (*domain.Tracker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, viewer, owner, name)
	ret0, _ := ret[0].(*domain.Tracker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockTrackerServiceMockRecorder) Get(ctx, viewer, owner, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockTrackerService)(nil).Get), ctx, viewer, owner, name)
}

// List mocks base method
func (m *MockTrackerService) List(ctx context.Context, viewer *domain.User, owner string, cursor *domain.Cursor) ([]*domain.Tracker, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, viewer, owner, cursor)
	ret0, _ := ret[0].([]*domain.Tracker)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockTrackerServiceMockRecorder) List(ctx, viewer, owner, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockTrackerService)(nil).List), ctx, viewer, owner, cursor)
}

// Update mocks base method
func (m *MockTrackerService) Update(ctx context.Context, actor *domain.User, req *domain.UpdateTrackerRequest) (*domain.Tracker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, actor, req)
	ret0, _ := ret[0].(*domain.Tracker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update
func (mr *MockTrackerServiceMockRecorder) Update(ctx, actor, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockTrackerService)(nil).Update), ctx, actor, req)
}

// Delete mocks base method
func (m *MockTrackerService) Delete(ctx context.Context, actor *domain.User, trackerID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, actor, trackerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTrackerServiceMockRecorder) Delete(ctx, actor, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTrackerService)(nil).Delete), ctx, actor, trackerID)
}
