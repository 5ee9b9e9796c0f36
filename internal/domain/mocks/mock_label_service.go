package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockLabelService is a mock of LabelService interface
type MockLabelService struct {
	ctrl     *gomock.Controller
	recorder *MockLabelServiceMockRecorder
}

// MockLabelServiceMockRecorder is the mock recorder for MockLabelService
type MockLabelServiceMockRecorder struct {
	mock *MockLabelService
}

// NewMockLabelService creates a new mock instance
func NewMockLabelService(ctrl *gomock.Controller) *MockLabelService {
	mock := &MockLabelService{ctrl: ctrl}
	mock.recorder = &MockLabelServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockLabelService) EXPECT() *MockLabelServiceMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockLabelService) Create(ctx context.Context, actor *domain.User, req *domain.CreateLabelRequest) (*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, actor, req)
	ret0, _ := ret[0].(*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create
func (mr *MockLabelServiceMockRecorder) Create(ctx, actor, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockLabelService)(nil).Create), ctx, actor, req)
}

// List mocks base method
func (m *MockLabelService) List(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) ([]*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, viewer, tracker)
	ret0, _ := ret[0].([]*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockLabelServiceMockRecorder) List(ctx, viewer, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockLabelService)(nil).List), ctx, viewer, tracker)
}

// Update mocks base method
func (m *MockLabelService) Update(ctx context.Context, actor *domain.User, req *domain.UpdateLabelRequest) (*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, actor, req)
	ret0, _ := ret[0].(*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update
func (mr *MockLabelServiceMockRecorder) Update(ctx, actor, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockLabelService)(nil).Update), ctx, actor, req)
}

// Delete mocks base method
func (m *MockLabelService) Delete(ctx context.Context, actor *domain.User, labelID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, actor, labelID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockLabelServiceMockRecorder) Delete(ctx, actor, labelID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockLabelService)(nil).Delete), ctx, actor, labelID)
}
