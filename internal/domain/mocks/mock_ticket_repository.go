package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockTicketRepository is a mock of TicketRepository interface
type MockTicketRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTicketRepositoryMockRecorder
}

// MockTicketRepositoryMockRecorder is the mock recorder for MockTicketRepository
type MockTicketRepositoryMockRecorder struct {
	mock *MockTicketRepository
}

// NewMockTicketRepository creates a new mock instance
func NewMockTicketRepository(ctrl *gomock.Controller) *MockTicketRepository {
	mock := &MockTicketRepository{ctrl: ctrl}
	mock.recorder = &MockTicketRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTicketRepository) EXPECT() *MockTicketRepositoryMockRecorder {
	return m.recorder
}

// WithTransaction mocks base method
func (m *MockTicketRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTransaction", ctx, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

// WithTransaction indicates an expected call of WithTransaction
func (mr *MockTicketRepositoryMockRecorder) WithTransaction(ctx, fn interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTransaction", reflect.TypeOf((*MockTicketRepository)(nil).WithTransaction), ctx, fn)
}

// InsertTx mocks base method
func (m *MockTicketRepository) InsertTx(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTx", ctx, tx, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertTx indicates an expected call of InsertTx
func (mr *MockTicketRepositoryMockRecorder) InsertTx(ctx, tx, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTx", reflect.TypeOf((*MockTicketRepository)(nil).InsertTx), ctx, tx, ticket)
}

// InsertImportedTx mocks base method
func (m *MockTicketRepository) InsertImportedTx(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertImportedTx", ctx, tx, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertImportedTx indicates an expected call of InsertImportedTx
func (mr *MockTicketRepositoryMockRecorder) InsertImportedTx(ctx, tx, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertImportedTx", reflect.TypeOf((*MockTicketRepository)(nil).InsertImportedTx), ctx, tx, ticket)
}

// GetByID mocks base method
func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockTicketRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockTicketRepository)(nil).GetByID), ctx, id)
}

// GetByScopedID mocks base method
func (m *MockTicketRepository) GetByScopedID(ctx context.Context, trackerID, scopedID int64) (*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByScopedID", ctx, trackerID, scopedID)
	ret0, _ := ret[0].(*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByScopedID indicates an expected call of GetByScopedID
func (mr *MockTicketRepositoryMockRecorder) GetByScopedID(ctx, trackerID, scopedID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByScopedID", reflect.TypeOf((*MockTicketRepository)(nil).GetByScopedID), ctx, trackerID, scopedID)
}

// List mocks base method
func (m *MockTicketRepository) List(ctx context.Context, trackerID int64, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, trackerID, cursor)
	ret0, _ := ret[0].([]*domain.Ticket)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockTicketRepositoryMockRecorder) List(ctx, trackerID, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockTicketRepository)(nil).List), ctx, trackerID, cursor)
}

// ListAll mocks base method
func (m *MockTicketRepository) ListAll(ctx context.Context, trackerID int64) ([]*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAll", ctx, trackerID)
	ret0, _ := ret[0].([]*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAll indicates an expected call of ListAll
func (mr *MockTicketRepositoryMockRecorder) ListAll(ctx, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAll", reflect.TypeOf((*MockTicketRepository)(nil).ListAll), ctx, trackerID)
}

// Search mocks base method
func (m *MockTicketRepository) Search(ctx context.Context, q *domain.TicketSearchQuery, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Search", ctx, q, cursor)
	ret0, _ := ret[0].([]*domain.Ticket)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Search indicates an expected call of Search
func (mr *MockTicketRepositoryMockRecorder) Search(ctx, q, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Search", reflect.TypeOf((*MockTicketRepository)(nil).Search), ctx, q, cursor)
}

// Update mocks base method
func (m *MockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockTicketRepositoryMockRecorder) Update(ctx, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockTicketRepository)(nil).Update), ctx, ticket)
}

// UpdateStatusTx mocks base method
func (m *MockTicketRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, ticketID int64, status domain.TicketStatus, resolution domain.TicketResolution) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStatusTx", ctx, tx, ticketID, status, resolution)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStatusTx indicates an expected call of UpdateStatusTx
func (mr *MockTicketRepositoryMockRecorder) UpdateStatusTx(ctx, tx, ticketID, status, resolution interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStatusTx", reflect.TypeOf((*MockTicketRepository)(nil).UpdateStatusTx), ctx, tx, ticketID, status, resolution)
}

// AdjustCommentCountTx mocks base method
func (m *MockTicketRepository) AdjustCommentCountTx(ctx context.Context, tx *sql.Tx, ticketID int64, delta int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AdjustCommentCountTx", ctx, tx, ticketID, delta)
	ret0, _ := ret[0].(error)
	return ret0
}

// AdjustCommentCountTx indicates an expected call of AdjustCommentCountTx
func (mr *MockTicketRepositoryMockRecorder) AdjustCommentCountTx(ctx, tx, ticketID, delta interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AdjustCommentCountTx", reflect.TypeOf((*MockTicketRepository)(nil).AdjustCommentCountTx), ctx, tx, ticketID, delta)
}

// TouchTx mocks base method
func (m *MockTicketRepository) TouchTx(ctx context.Context, tx *sql.Tx, ticketID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TouchTx", ctx, tx, ticketID)
	ret0, _ := ret[0].(error)
	return ret0
}

// TouchTx indicates an expected call of TouchTx
func (mr *MockTicketRepositoryMockRecorder) TouchTx(ctx, tx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TouchTx", reflect.TypeOf((*MockTicketRepository)(nil).TouchTx), ctx, tx, ticketID)
}

// Delete mocks base method
func (m *MockTicketRepository) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTicketRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTicketRepository)(nil).Delete), ctx, id)
}
