package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockWebhookService is a mock of WebhookService interface
type MockWebhookService struct {
	ctrl     *gomock.Controller
	recorder *MockWebhookServiceMockRecorder
}

// MockWebhookServiceMockRecorder is the mock recorder for MockWebhookService
type MockWebhookServiceMockRecorder struct {
	mock *MockWebhookService
}

// NewMockWebhookService creates a new mock instance
func NewMockWebhookService(ctrl *gomock.Controller) *MockWebhookService {
	mock := &MockWebhookService{ctrl: ctrl}
	mock.recorder = &MockWebhookServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockWebhookService) EXPECT() *MockWebhookServiceMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockWebhookService) Create(ctx context.Context, viewer *domain.User, req *domain.CreateWebhookRequest) (*domain.WebhookSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, viewer, req)
	ret0, _ := ret[0].(*domain.WebhookSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create
func (mr *MockWebhookServiceMockRecorder) Create(ctx, viewer, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockWebhookService)(nil).Create), ctx, viewer, req)
}

// List mocks base method
func (m *MockWebhookService) List(ctx context.Context, viewer *domain.User, scope domain.WebhookScope, trackerID, ticketID int64) ([]*domain.WebhookSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, viewer, scope, trackerID, ticketID)
	ret0, _ := ret[0].([]*domain.WebhookSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockWebhookServiceMockRecorder) List(ctx, viewer, scope, trackerID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockWebhookService)(nil).List), ctx, viewer, scope, trackerID, ticketID)
}

// Delete mocks base method
func (m *MockWebhookService) Delete(ctx context.Context, viewer *domain.User, webhookID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, viewer, webhookID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockWebhookServiceMockRecorder) Delete(ctx, viewer, webhookID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockWebhookService)(nil).Delete), ctx, viewer, webhookID)
}

// Dispatch mocks base method
func (m *MockWebhookService) Dispatch(ctx context.Context, event string, userID, trackerID, ticketID int64, payload interface{}) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Dispatch", ctx, event, userID, trackerID, ticketID, payload)
}

// Dispatch indicates an expected call of Dispatch
func (mr *MockWebhookServiceMockRecorder) Dispatch(ctx, event, userID, trackerID, ticketID, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dispatch", reflect.TypeOf((*MockWebhookService)(nil).Dispatch), ctx, event, userID, trackerID, ticketID, payload)
}
