package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockSubscriptionService is a mock of SubscriptionService interface
type MockSubscriptionService struct {
	ctrl     *gomock.Controller
	recorder *MockSubscriptionServiceMockRecorder
}

// MockSubscriptionServiceMockRecorder is the mock recorder for MockSubscriptionService
type MockSubscriptionServiceMockRecorder struct {
	mock *MockSubscriptionService
}

// NewMockSubscriptionService creates a new mock instance
func NewMockSubscriptionService(ctrl *gomock.Controller) *MockSubscriptionService {
	mock := &MockSubscriptionService{ctrl: ctrl}
	mock.recorder = &MockSubscriptionServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSubscriptionService) EXPECT() *MockSubscriptionServiceMockRecorder {
	return m.recorder
}

// SubscribeTracker mocks base method
func (m *MockSubscriptionService) SubscribeTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeTracker", ctx, viewer, tracker)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubscribeTracker indicates an expected call of SubscribeTracker
func (mr *MockSubscriptionServiceMockRecorder) SubscribeTracker(ctx, viewer, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeTracker", reflect.TypeOf((*MockSubscriptionService)(nil).SubscribeTracker), ctx, viewer, tracker)
}

// SubscribeTicket mocks base method
func (m *MockSubscriptionService) SubscribeTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) (*domain.TicketSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeTicket", ctx, viewer, tracker, ticket)
	ret0, _ := ret[0].(*domain.TicketSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubscribeTicket indicates an expected call of SubscribeTicket
func (mr *MockSubscriptionServiceMockRecorder) SubscribeTicket(ctx, viewer, tracker, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeTicket", reflect.TypeOf((*MockSubscriptionService)(nil).SubscribeTicket), ctx, viewer, tracker, ticket)
}

// UnsubscribeTracker mocks base method
func (m *MockSubscriptionService) UnsubscribeTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnsubscribeTracker", ctx, viewer, tracker)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnsubscribeTracker indicates an expected call of UnsubscribeTracker
func (mr *MockSubscriptionServiceMockRecorder) UnsubscribeTracker(ctx, viewer, tracker interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnsubscribeTracker", reflect.TypeOf((*MockSubscriptionService)(nil).UnsubscribeTracker), ctx, viewer, tracker)
}

// UnsubscribeTicket mocks base method
func (m *MockSubscriptionService) UnsubscribeTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnsubscribeTicket", ctx, viewer, tracker, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnsubscribeTicket indicates an expected call of UnsubscribeTicket
func (mr *MockSubscriptionServiceMockRecorder) UnsubscribeTicket(ctx, viewer, tracker, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnsubscribeTicket", reflect.TypeOf((*MockSubscriptionService)(nil).UnsubscribeTicket), ctx, viewer, tracker, ticket)
}

// UnsubscribeParticipant mocks base method
func (m *MockSubscriptionService) UnsubscribeParticipant(ctx context.Context, participant *domain.Participant, tracker *domain.Tracker, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnsubscribeParticipant", ctx, participant, tracker, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnsubscribeParticipant indicates an expected call of UnsubscribeParticipant
func (mr *MockSubscriptionServiceMockRecorder) UnsubscribeParticipant(ctx, participant, tracker, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnsubscribeParticipant", reflect.TypeOf((*MockSubscriptionService)(nil).UnsubscribeParticipant), ctx, participant, tracker, ticket)
}

// IsSubscribed mocks base method
func (m *MockSubscriptionService) IsSubscribed(ctx context.Context, participantID, trackerID, ticketID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsSubscribed", ctx, participantID, trackerID, ticketID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsSubscribed indicates an expected call of IsSubscribed
func (mr *MockSubscriptionServiceMockRecorder) IsSubscribed(ctx, participantID, trackerID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsSubscribed", reflect.TypeOf((*MockSubscriptionService)(nil).IsSubscribed), ctx, participantID, trackerID, ticketID)
}
