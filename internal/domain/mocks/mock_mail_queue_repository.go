package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockMailQueueRepository is a mock of MailQueueRepository interface
type MockMailQueueRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMailQueueRepositoryMockRecorder
}

// MockMailQueueRepositoryMockRecorder is the mock recorder for MockMailQueueRepository
type MockMailQueueRepositoryMockRecorder struct {
	mock *MockMailQueueRepository
}

// NewMockMailQueueRepository creates a new mock instance
func NewMockMailQueueRepository(ctrl *gomock.Controller) *MockMailQueueRepository {
	mock := &MockMailQueueRepository{ctrl: ctrl}
	mock.recorder = &MockMailQueueRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMailQueueRepository) EXPECT() *MockMailQueueRepositoryMockRecorder {
	return m.recorder
}

// Enqueue mocks base method
func (m *MockMailQueueRepository) Enqueue(ctx context.Context, msg *domain.MailMessage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enqueue", ctx, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// Enqueue indicates an expected call of Enqueue
func (mr *MockMailQueueRepositoryMockRecorder) Enqueue(ctx, msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enqueue", reflect.TypeOf((*MockMailQueueRepository)(nil).Enqueue), ctx, msg)
}

// PendingCount mocks base method
func (m *MockMailQueueRepository) PendingCount(ctx context.Context) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PendingCount", ctx)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PendingCount indicates an expected call of PendingCount
func (mr *MockMailQueueRepositoryMockRecorder) PendingCount(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PendingCount", reflect.TypeOf((*MockMailQueueRepository)(nil).PendingCount), ctx)
}
