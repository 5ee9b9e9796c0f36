package mocks

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockSubscriptionRepository is a mock of SubscriptionRepository interface
type MockSubscriptionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSubscriptionRepositoryMockRecorder
}

// MockSubscriptionRepositoryMockRecorder is the mock recorder for MockSubscriptionRepository
type MockSubscriptionRepositoryMockRecorder struct {
	mock *MockSubscriptionRepository
}

// NewMockSubscriptionRepository creates a new mock instance
func NewMockSubscriptionRepository(ctrl *gomock.Controller) *MockSubscriptionRepository {
	mock := &MockSubscriptionRepository{ctrl: ctrl}
	mock.recorder = &MockSubscriptionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSubscriptionRepository) EXPECT() *MockSubscriptionRepositoryMockRecorder {
	return m.recorder
}

// SubscribeTracker mocks base method
func (m *MockSubscriptionRepository) SubscribeTracker(ctx context.Context, participantID, trackerID int64) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeTracker", ctx, participantID, trackerID)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubscribeTracker indicates an expected call of SubscribeTracker
func (mr *MockSubscriptionRepositoryMockRecorder) SubscribeTracker(ctx, participantID, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeTracker", reflect.TypeOf((*MockSubscriptionRepository)(nil).SubscribeTracker), ctx, participantID, trackerID)
}

// SubscribeTicket mocks base method
func (m *MockSubscriptionRepository) SubscribeTicket(ctx context.Context, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeTicket", ctx, participantID, ticketID)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubscribeTicket indicates an expected call of SubscribeTicket
func (mr *MockSubscriptionRepositoryMockRecorder) SubscribeTicket(ctx, participantID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeTicket", reflect.TypeOf((*MockSubscriptionRepository)(nil).SubscribeTicket), ctx, participantID, ticketID)
}

// SubscribeTicketTx mocks base method
func (m *MockSubscriptionRepository) SubscribeTicketTx(ctx context.Context, tx *sql.Tx, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeTicketTx", ctx, tx, participantID, ticketID)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubscribeTicketTx indicates an expected call of SubscribeTicketTx
func (mr *MockSubscriptionRepositoryMockRecorder) SubscribeTicketTx(ctx, tx, participantID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeTicketTx", reflect.TypeOf((*MockSubscriptionRepository)(nil).SubscribeTicketTx), ctx, tx, participantID, ticketID)
}

// UnsubscribeTracker mocks base method
func (m *MockSubscriptionRepository) UnsubscribeTracker(ctx context.Context, participantID, trackerID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnsubscribeTracker", ctx, participantID, trackerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnsubscribeTracker indicates an expected call of UnsubscribeTracker
func (mr *MockSubscriptionRepositoryMockRecorder) UnsubscribeTracker(ctx, participantID, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnsubscribeTracker", reflect.TypeOf((*MockSubscriptionRepository)(nil).UnsubscribeTracker), ctx, participantID, trackerID)
}

// UnsubscribeTicket mocks base method
func (m *MockSubscriptionRepository) UnsubscribeTicket(ctx context.Context, participantID, ticketID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnsubscribeTicket", ctx, participantID, ticketID)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnsubscribeTicket indicates an expected call of UnsubscribeTicket
func (mr *MockSubscriptionRepositoryMockRecorder) UnsubscribeTicket(ctx, participantID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnsubscribeTicket", reflect.TypeOf((*MockSubscriptionRepository)(nil).UnsubscribeTicket), ctx, participantID, ticketID)
}

// GetForTracker mocks base method
func (m *MockSubscriptionRepository) GetForTracker(ctx context.Context, participantID, trackerID int64) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetForTracker", ctx, participantID, trackerID)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetForTracker indicates an expected call of GetForTracker
func (mr *MockSubscriptionRepositoryMockRecorder) GetForTracker(ctx, participantID, trackerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetForTracker", reflect.TypeOf((*MockSubscriptionRepository)(nil).GetForTracker), ctx, participantID, trackerID)
}

// GetForTicket mocks base method
func (m *MockSubscriptionRepository) GetForTicket(ctx context.Context, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetForTicket", ctx, participantID, ticketID)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetForTicket indicates an expected call of GetForTicket
func (mr *MockSubscriptionRepositoryMockRecorder) GetForTicket(ctx, participantID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetForTicket", reflect.TypeOf((*MockSubscriptionRepository)(nil).GetForTicket), ctx, participantID, ticketID)
}

// ListSubscribers mocks base method
func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, trackerID, ticketID int64) ([]*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListSubscribers", ctx, trackerID, ticketID)
	ret0, _ := ret[0].([]*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListSubscribers indicates an expected call of ListSubscribers
func (mr *MockSubscriptionRepositoryMockRecorder) ListSubscribers(ctx, trackerID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListSubscribers", reflect.TypeOf((*MockSubscriptionRepository)(nil).ListSubscribers), ctx, trackerID, ticketID)
}
