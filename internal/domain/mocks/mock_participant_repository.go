package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockParticipantRepository is a mock of ParticipantRepository interface
type MockParticipantRepository struct {
	ctrl     *gomock.Controller
	recorder *MockParticipantRepositoryMockRecorder
}

// MockParticipantRepositoryMockRecorder is the mock recorder for MockParticipantRepository
type MockParticipantRepositoryMockRecorder struct {
	mock *MockParticipantRepository
}

// NewMockParticipantRepository creates a new mock instance
func NewMockParticipantRepository(ctrl *gomock.Controller) *MockParticipantRepository {
	mock := &MockParticipantRepository{ctrl: ctrl}
	mock.recorder = &MockParticipantRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockParticipantRepository) EXPECT() *MockParticipantRepositoryMockRecorder {
	return m.recorder
}

// GetByID mocks base method
func (m *MockParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockParticipantRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockParticipantRepository)(nil).GetByID), ctx, id)
}

// GetByUserID mocks base method
func (m *MockParticipantRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByUserID", ctx, userID)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByUserID indicates an expected call of GetByUserID
func (mr *MockParticipantRepositoryMockRecorder) GetByUserID(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByUserID", reflect.TypeOf((*MockParticipantRepository)(nil).GetByUserID), ctx, userID)
}

// GetByEmail mocks base method
func (m *MockParticipantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByEmail", ctx, email)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByEmail indicates an expected call of GetByEmail
func (mr *MockParticipantRepositoryMockRecorder) GetByEmail(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByEmail", reflect.TypeOf((*MockParticipantRepository)(nil).GetByEmail), ctx, email)
}

// UpsertUser mocks base method
func (m *MockParticipantRepository) UpsertUser(ctx context.Context, userID int64) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertUser", ctx, userID)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpsertUser indicates an expected call of UpsertUser
func (mr *MockParticipantRepositoryMockRecorder) UpsertUser(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertUser", reflect.TypeOf((*MockParticipantRepository)(nil).UpsertUser), ctx, userID)
}

// UpsertEmail mocks base method
func (m *MockParticipantRepository) UpsertEmail(ctx context.Context, email, emailName string) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertEmail", ctx, email, emailName)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpsertEmail indicates an expected call of UpsertEmail
func (mr *MockParticipantRepositoryMockRecorder) UpsertEmail(ctx, email, emailName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertEmail", reflect.TypeOf((*MockParticipantRepository)(nil).UpsertEmail), ctx, email, emailName)
}

// UpsertExternal mocks base method
func (m *MockParticipantRepository) UpsertExternal(ctx context.Context, externalID, externalURL string) (*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertExternal", ctx, externalID, externalURL)
	ret0, _ := ret[0].(*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpsertExternal indicates an expected call of UpsertExternal
func (mr *MockParticipantRepositoryMockRecorder) UpsertExternal(ctx, externalID, externalURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertExternal", reflect.TypeOf((*MockParticipantRepository)(nil).UpsertExternal), ctx, externalID, externalURL)
}

// ListByIDs mocks base method
func (m *MockParticipantRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Participant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByIDs", ctx, ids)
	ret0, _ := ret[0].(map[int64]*domain.Participant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByIDs indicates an expected call of ListByIDs
func (mr *MockParticipantRepositoryMockRecorder) ListByIDs(ctx, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByIDs", reflect.TypeOf((*MockParticipantRepository)(nil).ListByIDs), ctx, ids)
}
