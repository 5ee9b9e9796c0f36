package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockParticipantService is a mock of ParticipantService interface
type MockParticipantService struct {
	ctrl     *gomock.Controller
	recorder *MockParticipantServiceMockRecorder
}

// MockParticipantServiceMockRecorder is the mock recorder for MockParticipantService
type MockParticipantServiceMockRecorder struct {
	mock *MockParticipantService
}

// NewMockParticipantService creates a new mock instance
func NewMockParticipantService(ctrl *gomock.Controller) *MockParticipantService {
	mock := &MockParticipantService{ctrl: ctrl}
	mock.recorder = &MockParticipantServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockParticipantService) EXPECT() *MockParticipantServiceMockRecorder {
	return m.recorder
}

// GetByID mocks base method
func (m *MockParticipantService) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockParticipantServiceMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockParticipantService)(nil).GetByID), ctx, id)
}

// ForUser mocks base method
func (m *MockParticipantService) ForUser(ctx context.Context, userID int64) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForUser", ctx, userID)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForUser indicates an expected call of ForUser
func (mr *MockParticipantServiceMockRecorder) ForUser(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForUser", reflect.TypeOf((*MockParticipantService)(nil).ForUser), ctx, userID)
}

// ForEmail mocks base method
func (m *MockParticipantService) ForEmail(ctx context.Context, email, emailName string) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForEmail", ctx, email, emailName)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForEmail indicates an expected call of ForEmail
func (mr *MockParticipantServiceMockRecorder) ForEmail(ctx, email, emailName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForEmail", reflect.TypeOf((*MockParticipantService)(nil).ForEmail), ctx, email, emailName)
}

// ForExternal mocks base method
func (m *MockParticipantService) ForExternal(ctx context.Context, externalID, externalURL string) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForExternal", ctx, externalID, externalURL)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForExternal indicates an expected call of ForExternal
func (mr *MockParticipantServiceMockRecorder) ForExternal(ctx, externalID, externalURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForExternal", reflect.TypeOf((*MockParticipantService)(nil).ForExternal), ctx, externalID, externalURL)
}
