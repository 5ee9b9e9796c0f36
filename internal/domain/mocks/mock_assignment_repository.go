package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockAssignmentRepository is a mock of AssignmentRepository interface
type MockAssignmentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAssignmentRepositoryMockRecorder
}

// MockAssignmentRepositoryMockRecorder is the mock recorder for MockAssignmentRepository
type MockAssignmentRepositoryMockRecorder struct {
	mock *MockAssignmentRepository
}

// NewMockAssignmentRepository creates a new mock instance
func NewMockAssignmentRepository(ctrl *gomock.Controller) *MockAssignmentRepository {
	mock := &MockAssignmentRepository{ctrl: ctrl}
	mock.recorder = &MockAssignmentRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAssignmentRepository) EXPECT() *MockAssignmentRepositoryMockRecorder {
	return m.recorder
}

// AssignTx mocks base method
func (m *MockAssignmentRepository) AssignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID, assignerID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AssignTx", ctx, tx, ticketID, assigneeID, assignerID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AssignTx indicates an expected call of AssignTx
func (mr *MockAssignmentRepositoryMockRecorder) AssignTx(ctx, tx, ticketID, assigneeID, assignerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AssignTx", reflect.TypeOf((*MockAssignmentRepository)(nil).AssignTx), ctx, tx, ticketID, assigneeID, assignerID)
}

// UnassignTx mocks base method
func (m *MockAssignmentRepository) UnassignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnassignTx", ctx, tx, ticketID, assigneeID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UnassignTx indicates an expected call of UnassignTx
func (mr *MockAssignmentRepositoryMockRecorder) UnassignTx(ctx, tx, ticketID, assigneeID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnassignTx", reflect.TypeOf((*MockAssignmentRepository)(nil).UnassignTx), ctx, tx, ticketID, assigneeID)
}

// ListForTicket mocks base method
func (m *MockAssignmentRepository) ListForTicket(ctx context.Context, ticketID int64) ([]*domain.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForTicket", ctx, ticketID)
	ret0, _ := ret[0].([]*domain.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListForTicket indicates an expected call of ListForTicket
func (mr *MockAssignmentRepositoryMockRecorder) ListForTicket(ctx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForTicket", reflect.TypeOf((*MockAssignmentRepository)(nil).ListForTicket), ctx, ticketID)
}
