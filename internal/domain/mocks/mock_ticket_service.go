package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockTicketService is a mock of TicketService interface
type MockTicketService struct {
	ctrl     *gomock.Controller
	recorder *MockTicketServiceMockRecorder
}

// MockTicketServiceMockRecorder is the mock recorder for MockTicketService
type MockTicketServiceMockRecorder struct {
	mock *MockTicketService
}

// NewMockTicketService creates a new mock instance
func NewMockTicketService(ctrl *gomock.Controller) *MockTicketService {
	mock := &MockTicketService{ctrl: ctrl}
	mock.recorder = &MockTicketServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTicketService) EXPECT() *MockTicketServiceMockRecorder {
	return m.recorder
}

// Submit mocks base method
func (m *MockTicketService) Submit(ctx context.Context, viewer *domain.User, actor *domain.Participant, tracker *domain.Tracker, req *domain.SubmitTicketRequest) (*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, viewer, actor, tracker, req)
	ret0, _ := ret[0].(*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Submit indicates an expected call of Submit
func (mr *MockTicketServiceMockRecorder) Submit(ctx, viewer, actor, tracker, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockTicketService)(nil).Submit), ctx, viewer, actor, tracker, req)
}

// Apply mocks base method
func (m *MockTicketService) Apply(ctx context.Context, viewer *domain.User, actor *domain.Participant, tracker *domain.Tracker, ticket *domain.Ticket, update *domain.TicketUpdate) (*domain.Event, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Apply", ctx, viewer, actor, tracker, ticket, update)
	ret0, _ := ret[0].(*domain.Event)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Apply indicates an expected call of Apply
func (mr *MockTicketServiceMockRecorder) Apply(ctx, viewer, actor, tracker, ticket, update interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Apply", reflect.TypeOf((*MockTicketService)(nil).Apply), ctx, viewer, actor, tracker, ticket, update)
}

// EditComment mocks base method
func (m *MockTicketService) EditComment(ctx context.Context, editor *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, commentID int64, text string) (*domain.TicketComment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EditComment", ctx, editor, tracker, ticket, commentID, text)
	ret0, _ := ret[0].(*domain.TicketComment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EditComment indicates an expected call of EditComment
func (mr *MockTicketServiceMockRecorder) EditComment(ctx, editor, tracker, ticket, commentID, text interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EditComment", reflect.TypeOf((*MockTicketService)(nil).EditComment), ctx, editor, tracker, ticket, commentID, text)
}

// Assign mocks base method
func (m *MockTicketService) Assign(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, assignee *domain.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Assign", ctx, viewer, tracker, ticket, assignee)
	ret0, _ := ret[0].(error)
	return ret0
}

// Assign indicates an expected call of Assign
func (mr *MockTicketServiceMockRecorder) Assign(ctx, viewer, tracker, ticket, assignee interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Assign", reflect.TypeOf((*MockTicketService)(nil).Assign), ctx, viewer, tracker, ticket, assignee)
}

// Unassign mocks base method
func (m *MockTicketService) Unassign(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, assignee *domain.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Unassign", ctx, viewer, tracker, ticket, assignee)
	ret0, _ := ret[0].(error)
	return ret0
}

// Unassign indicates an expected call of Unassign
func (mr *MockTicketServiceMockRecorder) Unassign(ctx, viewer, tracker, ticket, assignee interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Unassign", reflect.TypeOf((*MockTicketService)(nil).Unassign), ctx, viewer, tracker, ticket, assignee)
}

// AddLabel mocks base method
func (m *MockTicketService) AddLabel(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, label *domain.Label) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddLabel", ctx, viewer, tracker, ticket, label)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddLabel indicates an expected call of AddLabel
func (mr *MockTicketServiceMockRecorder) AddLabel(ctx, viewer, tracker, ticket, label interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddLabel", reflect.TypeOf((*MockTicketService)(nil).AddLabel), ctx, viewer, tracker, ticket, label)
}

// RemoveLabel mocks base method
func (m *MockTicketService) RemoveLabel(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, label *domain.Label) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveLabel", ctx, viewer, tracker, ticket, label)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveLabel indicates an expected call of RemoveLabel
func (mr *MockTicketServiceMockRecorder) RemoveLabel(ctx, viewer, tracker, ticket, label interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveLabel", reflect.TypeOf((*MockTicketService)(nil).RemoveLabel), ctx, viewer, tracker, ticket, label)
}

// Update mocks base method
func (m *MockTicketService) Update(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, req *domain.UpdateTicketRequest) (*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, viewer, tracker, ticket, req)
	ret0, _ := ret[0].(*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update
func (mr *MockTicketServiceMockRecorder) Update(ctx, viewer, tracker, ticket, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockTicketService)(nil).Update), ctx, viewer, tracker, ticket, req)
}

// Get mocks base method
func (m *MockTicketService) Get(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, scopedID int64) (*domain.Ticket, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, viewer, tracker, scopedID)
	ret0, _ := ret[0].(*domain.Ticket)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockTicketServiceMockRecorder) Get(ctx, viewer, tracker, scopedID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockTicketService)(nil).Get), ctx, viewer, tracker, scopedID)
}

// List mocks base method
func (m *MockTicketService) List(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, viewer, tracker, cursor)
	ret0, _ := ret[0].([]*domain.Ticket)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockTicketServiceMockRecorder) List(ctx, viewer, tracker, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockTicketService)(nil).List), ctx, viewer, tracker, cursor)
}

// Delete mocks base method
func (m *MockTicketService) Delete(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, viewer, tracker, ticket)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTicketServiceMockRecorder) Delete(ctx, viewer, tracker, ticket interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTicketService)(nil).Delete), ctx, viewer, tracker, ticket)
}

// Events mocks base method
func (m *MockTicketService) Events(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Events", ctx, viewer, tracker, ticket, cursor)
	ret0, _ := ret[0].([]*domain.Event)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Events indicates an expected call of Events
func (mr *MockTicketServiceMockRecorder) Events(ctx, viewer, tracker, ticket, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Events", reflect.TypeOf((*MockTicketService)(nil).Events), ctx, viewer, tracker, ticket, cursor)
}
