package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockEventRepository is a mock of EventRepository interface
type MockEventRepository struct {
	ctrl     *gomock.Controller
	recorder *MockEventRepositoryMockRecorder
}

// MockEventRepositoryMockRecorder is the mock recorder for MockEventRepository
type MockEventRepositoryMockRecorder struct {
	mock *MockEventRepository
}

// NewMockEventRepository creates a new mock instance
func NewMockEventRepository(ctrl *gomock.Controller) *MockEventRepository {
	mock := &MockEventRepository{ctrl: ctrl}
	mock.recorder = &MockEventRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEventRepository) EXPECT() *MockEventRepositoryMockRecorder {
	return m.recorder
}

// InsertTx mocks base method
func (m *MockEventRepository) InsertTx(ctx context.Context, tx *sql.Tx, event *domain.Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTx", ctx, tx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertTx indicates an expected call of InsertTx
func (mr *MockEventRepositoryMockRecorder) InsertTx(ctx, tx, event interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTx", reflect.TypeOf((*MockEventRepository)(nil).InsertTx), ctx, tx, event)
}

// GetByID mocks base method
func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Event)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockEventRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockEventRepository)(nil).GetByID), ctx, id)
}

// ListByTicket mocks base method
func (m *MockEventRepository) ListByTicket(ctx context.Context, ticketID int64, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByTicket", ctx, ticketID, cursor)
	ret0, _ := ret[0].([]*domain.Event)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListByTicket indicates an expected call of ListByTicket
func (mr *MockEventRepositoryMockRecorder) ListByTicket(ctx, ticketID, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByTicket", reflect.TypeOf((*MockEventRepository)(nil).ListByTicket), ctx, ticketID, cursor)
}

// ListAllByTicket mocks base method
func (m *MockEventRepository) ListAllByTicket(ctx context.Context, ticketID int64) ([]*domain.Event, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAllByTicket", ctx, ticketID)
	ret0, _ := ret[0].([]*domain.Event)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAllByTicket indicates an expected call of ListAllByTicket
func (mr *MockEventRepositoryMockRecorder) ListAllByTicket(ctx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAllByTicket", reflect.TypeOf((*MockEventRepository)(nil).ListAllByTicket), ctx, ticketID)
}

// ListForUser mocks base method
func (m *MockEventRepository) ListForUser(ctx context.Context, userID int64, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForUser", ctx, userID, cursor)
	ret0, _ := ret[0].([]*domain.Event)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListForUser indicates an expected call of ListForUser
func (mr *MockEventRepositoryMockRecorder) ListForUser(ctx, userID, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForUser", reflect.TypeOf((*MockEventRepository)(nil).ListForUser), ctx, userID, cursor)
}

// GetLatestByCommentTx mocks base method
func (m *MockEventRepository) GetLatestByCommentTx(ctx context.Context, tx *sql.Tx, commentID int64) (*domain.Event, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLatestByCommentTx", ctx, tx, commentID)
	ret0, _ := ret[0].(*domain.Event)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLatestByCommentTx indicates an expected call of GetLatestByCommentTx
func (mr *MockEventRepositoryMockRecorder) GetLatestByCommentTx(ctx, tx, commentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLatestByCommentTx", reflect.TypeOf((*MockEventRepository)(nil).GetLatestByCommentTx), ctx, tx, commentID)
}

// RepointCommentTx mocks base method
func (m *MockEventRepository) RepointCommentTx(ctx context.Context, tx *sql.Tx, eventID, commentID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RepointCommentTx", ctx, tx, eventID, commentID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RepointCommentTx indicates an expected call of RepointCommentTx
func (mr *MockEventRepositoryMockRecorder) RepointCommentTx(ctx, tx, eventID, commentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RepointCommentTx", reflect.TypeOf((*MockEventRepository)(nil).RepointCommentTx), ctx, tx, eventID, commentID)
}

// InsertNotificationTx mocks base method
func (m *MockEventRepository) InsertNotificationTx(ctx context.Context, tx *sql.Tx, eventID, userID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertNotificationTx", ctx, tx, eventID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertNotificationTx indicates an expected call of InsertNotificationTx
func (mr *MockEventRepositoryMockRecorder) InsertNotificationTx(ctx, tx, eventID, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertNotificationTx", reflect.TypeOf((*MockEventRepository)(nil).InsertNotificationTx), ctx, tx, eventID, userID)
}
