package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockWebhookRepository is a mock of WebhookRepository interface
type MockWebhookRepository struct {
	ctrl     *gomock.Controller
	recorder *MockWebhookRepositoryMockRecorder
}

// MockWebhookRepositoryMockRecorder is the mock recorder for MockWebhookRepository
type MockWebhookRepositoryMockRecorder struct {
	mock *MockWebhookRepository
}

// NewMockWebhookRepository creates a new mock instance
func NewMockWebhookRepository(ctrl *gomock.Controller) *MockWebhookRepository {
	mock := &MockWebhookRepository{ctrl: ctrl}
	mock.recorder = &MockWebhookRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockWebhookRepository) EXPECT() *MockWebhookRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockWebhookRepository) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, sub)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockWebhookRepositoryMockRecorder) Create(ctx, sub interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockWebhookRepository)(nil).Create), ctx, sub)
}

// GetByID mocks base method
func (m *MockWebhookRepository) GetByID(ctx context.Context, id int64) (*domain.WebhookSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.WebhookSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockWebhookRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockWebhookRepository)(nil).GetByID), ctx, id)
}

// ListForEvent mocks base method
func (m *MockWebhookRepository) ListForEvent(ctx context.Context, event string, userID, trackerID, ticketID int64) ([]*domain.WebhookSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForEvent", ctx, event, userID, trackerID, ticketID)
	ret0, _ := ret[0].([]*domain.WebhookSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListForEvent indicates an expected call of ListForEvent
func (mr *MockWebhookRepositoryMockRecorder) ListForEvent(ctx, event, userID, trackerID, ticketID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForEvent", reflect.TypeOf((*MockWebhookRepository)(nil).ListForEvent), ctx, event, userID, trackerID, ticketID)
}

// ListByScope mocks base method
func (m *MockWebhookRepository) ListByScope(ctx context.Context, scope domain.WebhookScope, scopeID int64) ([]*domain.WebhookSubscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByScope", ctx, scope, scopeID)
	ret0, _ := ret[0].([]*domain.WebhookSubscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByScope indicates an expected call of ListByScope
func (mr *MockWebhookRepositoryMockRecorder) ListByScope(ctx, scope, scopeID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByScope", reflect.TypeOf((*MockWebhookRepository)(nil).ListByScope), ctx, scope, scopeID)
}

// Delete mocks base method
func (m *MockWebhookRepository) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockWebhookRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockWebhookRepository)(nil).Delete), ctx, id)
}

// Enqueue mocks base method
func (m *MockWebhookRepository) Enqueue(ctx context.Context, delivery *domain.WebhookDelivery) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enqueue", ctx, delivery)
	ret0, _ := ret[0].(error)
	return ret0
}

// Enqueue indicates an expected call of Enqueue
func (mr *MockWebhookRepositoryMockRecorder) Enqueue(ctx, delivery interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enqueue", reflect.TypeOf((*MockWebhookRepository)(nil).Enqueue), ctx, delivery)
}

// NextDeliveries mocks base method
func (m *MockWebhookRepository) NextDeliveries(ctx context.Context, limit int) ([]*domain.WebhookDelivery, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NextDeliveries", ctx, limit)
	ret0, _ := ret[0].([]*domain.WebhookDelivery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// NextDeliveries indicates an expected call of NextDeliveries
func (mr *MockWebhookRepositoryMockRecorder) NextDeliveries(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NextDeliveries", reflect.TypeOf((*MockWebhookRepository)(nil).NextDeliveries), ctx, limit)
}

// MarkDelivered mocks base method
func (m *MockWebhookRepository) MarkDelivered(ctx context.Context, deliveryID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkDelivered", ctx, deliveryID)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkDelivered indicates an expected call of MarkDelivered
func (mr *MockWebhookRepositoryMockRecorder) MarkDelivered(ctx, deliveryID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkDelivered", reflect.TypeOf((*MockWebhookRepository)(nil).MarkDelivered), ctx, deliveryID)
}

// ScheduleRetry mocks base method
func (m *MockWebhookRepository) ScheduleRetry(ctx context.Context, deliveryID string, attempts int, nextAttempt time.Time, lastError string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ScheduleRetry", ctx, deliveryID, attempts, nextAttempt, lastError)
	ret0, _ := ret[0].(error)
	return ret0
}

// ScheduleRetry indicates an expected call of ScheduleRetry
func (mr *MockWebhookRepositoryMockRecorder) ScheduleRetry(ctx, deliveryID, attempts, nextAttempt, lastError interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ScheduleRetry", reflect.TypeOf((*MockWebhookRepository)(nil).ScheduleRetry), ctx, deliveryID, attempts, nextAttempt, lastError)
}

// MarkFailed mocks base method
func (m *MockWebhookRepository) MarkFailed(ctx context.Context, deliveryID string, attempts int, lastError string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkFailed", ctx, deliveryID, attempts, lastError)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkFailed indicates an expected call of MarkFailed
func (mr *MockWebhookRepositoryMockRecorder) MarkFailed(ctx, deliveryID, attempts, lastError interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkFailed", reflect.TypeOf((*MockWebhookRepository)(nil).MarkFailed), ctx, deliveryID, attempts, lastError)
}

// CleanupDeliveries mocks base method
func (m *MockWebhookRepository) CleanupDeliveries(ctx context.Context, olderThan time.Time) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CleanupDeliveries", ctx, olderThan)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CleanupDeliveries indicates an expected call of CleanupDeliveries
func (mr *MockWebhookRepositoryMockRecorder) CleanupDeliveries(ctx, olderThan interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CleanupDeliveries", reflect.TypeOf((*MockWebhookRepository)(nil).CleanupDeliveries), ctx, olderThan)
}
