package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockBrokerNotifier is a mock of BrokerNotifier interface
type MockBrokerNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockBrokerNotifierMockRecorder
}

// MockBrokerNotifierMockRecorder is the mock recorder for MockBrokerNotifier
type MockBrokerNotifierMockRecorder struct {
	mock *MockBrokerNotifier
}

// NewMockBrokerNotifier creates a new mock instance
func NewMockBrokerNotifier(ctrl *gomock.Controller) *MockBrokerNotifier {
	mock := &MockBrokerNotifier{ctrl: ctrl}
	mock.recorder = &MockBrokerNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockBrokerNotifier) EXPECT() *MockBrokerNotifierMockRecorder {
	return m.recorder
}

// Nudge mocks base method
func (m *MockBrokerNotifier) Nudge(ctx context.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Nudge", ctx)
}

// Nudge indicates an expected call of Nudge
func (mr *MockBrokerNotifierMockRecorder) Nudge(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Nudge", reflect.TypeOf((*MockBrokerNotifier)(nil).Nudge), ctx)
}
