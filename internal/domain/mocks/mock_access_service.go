package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockAccessService is a mock of AccessService interface
type MockAccessService struct {
	ctrl     *gomock.Controller
	recorder *MockAccessServiceMockRecorder
}

// MockAccessServiceMockRecorder is the mock recorder for MockAccessService
type MockAccessServiceMockRecorder struct {
	mock *MockAccessService
}

// NewMockAccessService creates a new mock instance
func NewMockAccessService(ctrl *gomock.Controller) *MockAccessService {
	mock := &MockAccessService{ctrl: ctrl}
	mock.recorder = &MockAccessServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAccessService) EXPECT() *MockAccessServiceMockRecorder {
	return m.recorder
}

// ForTracker mocks base method
func (m *MockAccessService) ForTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) (domain.TicketAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForTracker", ctx, viewer, tracker)
	ret0, _ := ret[0].(domain.TicketAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForTracker indicates an expected call of ForTracker
func (mr *MockAccessServiceMockRecorder) ForTracker(ctx, viewer, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForTracker", reflect.TypeOf((*MockAccessService)(nil).ForTracker), ctx, viewer, tracker)
}

// ForTicket mocks base method
func (m *MockAccessService) ForTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) (domain.TicketAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForTicket", ctx, viewer, tracker, ticket)
	ret0, _ := ret[0].(domain.TicketAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForTicket indicates an expected call of ForTicket
func (mr *MockAccessServiceMockRecorder) ForTicket(ctx, viewer, tracker, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForTicket", reflect.TypeOf((*MockAccessService)(nil).ForTicket), ctx, viewer, tracker, ticket)
}

// Grant mocks base method
func (m *MockAccessService) Grant(ctx context.Context, actor *domain.User, tracker *domain.Tracker, req *domain.GrantUserAccessRequest) (*domain.UserAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Grant", ctx, actor, tracker, req)
	ret0, _ := ret[0].(*domain.UserAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Grant indicates an expected call of Grant
func (mr *MockAccessServiceMockRecorder) Grant(ctx, actor, tracker, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Grant", reflect.TypeOf((*MockAccessService)(nil).Grant), ctx, actor, tracker, req)
}

// Revoke mocks base method
func (m *MockAccessService) Revoke(ctx context.Context, actor *domain.User, tracker *domain.Tracker, req *domain.RevokeUserAccessRequest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Revoke", ctx, actor, tracker, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// Revoke indicates an expected call of Revoke
func (mr *MockAccessServiceMockRecorder) Revoke(ctx, actor, tracker, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revoke", reflect.TypeOf((*MockAccessService)(nil).Revoke), ctx, actor, tracker, req)
}

// List mocks base method
func (m *MockAccessService) List(ctx context.Context, actor *domain.User, tracker *domain.Tracker) ([]*domain.UserAccess, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, actor, tracker)
	ret0, _ := ret[0].([]*domain.UserAccess)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockAccessServiceMockRecorder) List(ctx, actor, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockAccessService)(nil).List), ctx, actor, tracker)
}
