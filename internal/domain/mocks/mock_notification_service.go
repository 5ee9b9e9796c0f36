package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockNotificationService is a mock of NotificationService interface
type MockNotificationService struct {
	ctrl     *gomock.Controller
	recorder *MockNotificationServiceMockRecorder
}

// MockNotificationServiceMockRecorder is the mock recorder for MockNotificationService
type MockNotificationServiceMockRecorder struct {
	mock *MockNotificationService
}

// NewMockNotificationService creates a new mock instance
func NewMockNotificationService(ctrl *gomock.Controller) *MockNotificationService {
	mock := &MockNotificationService{ctrl: ctrl}
	mock.recorder = &MockNotificationServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockNotificationService) EXPECT() *MockNotificationServiceMockRecorder {
	return m.recorder
}

// SendEventMail mocks base method
func (m *MockNotificationService) SendEventMail(ctx context.Context, mail *domain.EventMail) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendEventMail", ctx, mail)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendEventMail indicates an expected call of SendEventMail
func (mr *MockNotificationServiceMockRecorder) SendEventMail(ctx, mail interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendEventMail", reflect.TypeOf((*MockNotificationService)(nil).SendEventMail), ctx, mail)
}

// SendMentionMail mocks base method
func (m *MockNotificationService) SendMentionMail(ctx context.Context, mail *domain.EventMail, mentioned *domain.Participant) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendMentionMail", ctx, mail, mentioned)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendMentionMail indicates an expected call of SendMentionMail
func (mr *MockNotificationServiceMockRecorder) SendMentionMail(ctx, mail, mentioned interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMentionMail", reflect.TypeOf((*MockNotificationService)(nil).SendMentionMail), ctx, mail, mentioned)
}
