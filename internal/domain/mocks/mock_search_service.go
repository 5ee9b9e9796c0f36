package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockSearchService is a mock of SearchService interface
type MockSearchService struct {
	ctrl     *gomock.Controller
	recorder *MockSearchServiceMockRecorder
}

// MockSearchServiceMockRecorder is the mock recorder for MockSearchService
type MockSearchServiceMockRecorder struct {
	mock *MockSearchService
}

// NewMockSearchService creates a new mock instance
func NewMockSearchService(ctrl *gomock.Controller) *MockSearchService {
	mock := &MockSearchService{ctrl: ctrl}
	mock.recorder = &MockSearchServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSearchService) EXPECT() *MockSearchServiceMockRecorder {
	return m.recorder
}

// Search mocks base method
func (m *MockSearchService) Search(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, query string, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Search", ctx, viewer, tracker, query, cursor)
	ret0, _ := ret[0].([]*domain.Ticket)
	ret1, _ := ret[1].(*domain.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Search indicates an expected call of Search
func (mr *MockSearchServiceMockRecorder) Search(ctx, viewer, tracker, query, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Search", reflect.TypeOf((*MockSearchService)(nil).Search), ctx, viewer, tracker, query, cursor)
}
