package mocks

import (
	"context"
	"io"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tracknest/tracknest/internal/domain"
)

// MockImportService is a mock of ImportService interface
type MockImportService struct {
	ctrl     *gomock.Controller
	recorder *MockImportServiceMockRecorder
}

// MockImportServiceMockRecorder is the mock recorder for MockImportService
type MockImportServiceMockRecorder struct {
	mock *MockImportService
}

// NewMockImportService creates a new mock instance
func NewMockImportService(ctrl *gomock.Controller) *MockImportService {
	mock := &MockImportService{ctrl: ctrl}
	mock.recorder = &MockImportServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockImportService) EXPECT() *MockImportServiceMockRecorder {
	return m.recorder
}

// Import mocks base method
func (m *MockImportService) Import(ctx context.Context, tracker *domain.Tracker, r io.Reader) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Import", ctx, tracker, r)
	ret0, _ := ret[0].(error)
	return ret0
}

// Import indicates an expected call of Import
func (mr *MockImportServiceMockRecorder) Import(ctx, tracker, r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Import", reflect.TypeOf((*MockImportService)(nil).Import), ctx, tracker, r)
}
