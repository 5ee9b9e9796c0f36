package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockLabelRepository is a mock of LabelRepository interface
type MockLabelRepository struct {
	ctrl     *gomock.Controller
	recorder *MockLabelRepositoryMockRecorder
}

// MockLabelRepositoryMockRecorder is the mock recorder for MockLabelRepository
type MockLabelRepositoryMockRecorder struct {
	mock *MockLabelRepository
}

// NewMockLabelRepository creates a new mock instance
func NewMockLabelRepository(ctrl *gomock.Controller) *MockLabelRepository {
	mock := &MockLabelRepository{ctrl: ctrl}
	mock.recorder = &MockLabelRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockLabelRepository) EXPECT() *MockLabelRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockLabelRepository) Create(ctx context.Context, label *domain.Label) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, label)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockLabelRepositoryMockRecorder) Create(ctx, label interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockLabelRepository)(nil).Create), ctx, label)
}

// GetByID mocks base method
func (m *MockLabelRepository) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockLabelRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockLabelRepository)(nil).GetByID), ctx, id)
}

// GetByName mocks base method
func (m *MockLabelRepository) GetByName(ctx context.Context, trackerID int64, name string) (*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByName", ctx, trackerID, name)
	ret0, _ := ret[0].(*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByName indicates an expected call of GetByName
func (mr *MockLabelRepositoryMockRecorder) GetByName(ctx, trackerID, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByName", reflect.TypeOf((*MockLabelRepository)(nil).GetByName), ctx, trackerID, name)
}

// ListByTracker mocks base method
func (m *MockLabelRepository) ListByTracker(ctx context.Context, trackerID int64) ([]*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByTracker", ctx, trackerID)
	ret0, _ := ret[0].([]*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByTracker indicates an expected call of ListByTracker
func (mr *MockLabelRepositoryMockRecorder) ListByTracker(ctx, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByTracker", reflect.TypeOf((*MockLabelRepository)(nil).ListByTracker), ctx, trackerID)
}

// Update mocks base method
func (m *MockLabelRepository) Update(ctx context.Context, label *domain.Label) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, label)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockLabelRepositoryMockRecorder) Update(ctx, label interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockLabelRepository)(nil).Update), ctx, label)
}

// Delete mocks base method
func (m *MockLabelRepository) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockLabelRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockLabelRepository)(nil).Delete), ctx, id)
}

// AddToTicketTx mocks base method
func (m *MockLabelRepository) AddToTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID, userID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddToTicketTx", ctx, tx, ticketID, labelID, userID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddToTicketTx indicates an expected call of AddToTicketTx
func (mr *MockLabelRepositoryMockRecorder) AddToTicketTx(ctx, tx, ticketID, labelID, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddToTicketTx", reflect.TypeOf((*MockLabelRepository)(nil).AddToTicketTx), ctx, tx, ticketID, labelID, userID)
}

// RemoveFromTicketTx mocks base method
func (m *MockLabelRepository) RemoveFromTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveFromTicketTx", ctx, tx, ticketID, labelID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RemoveFromTicketTx indicates an expected call of RemoveFromTicketTx
func (mr *MockLabelRepositoryMockRecorder) RemoveFromTicketTx(ctx, tx, ticketID, labelID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveFromTicketTx", reflect.TypeOf((*MockLabelRepository)(nil).RemoveFromTicketTx), ctx, tx, ticketID, labelID)
}

// ListForTicket mocks base method
func (m *MockLabelRepository) ListForTicket(ctx context.Context, ticketID int64) ([]*domain.Label, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForTicket", ctx, ticketID)
	ret0, _ := ret[0].([]*domain.Label)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListForTicket indicates an expected call of ListForTicket
func (mr *MockLabelRepositoryMockRecorder) ListForTicket(ctx, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForTicket", reflect.TypeOf((*MockLabelRepository)(nil).ListForTicket), ctx, ticketID)
}
