package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockCommentRepository is a mock of CommentRepository interface
type MockCommentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCommentRepositoryMockRecorder
}

// MockCommentRepositoryMockRecorder is the mock recorder for MockCommentRepository
type MockCommentRepositoryMockRecorder struct {
	mock *MockCommentRepository
}

// NewMockCommentRepository creates a new mock instance
func NewMockCommentRepository(ctrl *gomock.Controller) *MockCommentRepository {
	mock := &MockCommentRepository{ctrl: ctrl}
	mock.recorder = &MockCommentRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCommentRepository) EXPECT() *MockCommentRepositoryMockRecorder {
	return m.recorder
}

// InsertTx mocks base method
func (m *MockCommentRepository) InsertTx(ctx context.Context, tx *sql.Tx, comment *domain.TicketComment) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTx", ctx, tx, comment)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertTx indicates an expected call of InsertTx
func (mr *MockCommentRepositoryMockRecorder) InsertTx(ctx, tx, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTx", reflect.TypeOf((*MockCommentRepository)(nil).InsertTx), ctx, tx, comment)
}

// GetByID mocks base method
func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*domain.TicketComment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.TicketComment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockCommentRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockCommentRepository)(nil).GetByID), ctx, id)
}

// ListByTicket mocks base method
func (m *MockCommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.TicketComment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByTicket", ctx, ticketID)
	ret0, _ := ret[0].([]*domain.TicketComment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByTicket indicates an expected call of ListByTicket
func (mr *MockCommentRepositoryMockRecorder) ListByTicket(ctx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByTicket", reflect.TypeOf((*MockCommentRepository)(nil).ListByTicket), ctx, ticketID)
}

// SupersedeTx mocks base method
func (m *MockCommentRepository) SupersedeTx(ctx context.Context, tx *sql.Tx, oldID, newID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SupersedeTx", ctx, tx, oldID, newID)
	ret0, _ := ret[0].(error)
	return ret0
}

// SupersedeTx indicates an expected call of SupersedeTx
func (mr *MockCommentRepositoryMockRecorder) SupersedeTx(ctx, tx, oldID, newID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SupersedeTx", reflect.TypeOf((*MockCommentRepository)(nil).SupersedeTx), ctx, tx, oldID, newID)
}

// Resolve mocks base method
func (m *MockCommentRepository) Resolve(ctx context.Context, id int64) (*domain.TicketComment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", ctx, id)
	ret0, _ := ret[0].(*domain.TicketComment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Resolve indicates an expected call of Resolve
func (mr *MockCommentRepositoryMockRecorder) Resolve(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockCommentRepository)(nil).Resolve), ctx, id)
}

// CountCurrentByTicket mocks base method
func (m *MockCommentRepository) CountCurrentByTicket(ctx context.Context, ticketID int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountCurrentByTicket", ctx, ticketID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountCurrentByTicket indicates an expected call of CountCurrentByTicket
func (mr *MockCommentRepositoryMockRecorder) CountCurrentByTicket(ctx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountCurrentByTicket", reflect.TypeOf((*MockCommentRepository)(nil).CountCurrentByTicket), ctx, ticketID)
}
