package mocks

import (
	"context"
	"net/http"
	"reflect"

	"github.com/golang/mock/gomock"
	"go.opencensus.io/trace"
)

// MockTracer is a mock of Tracer interface
type MockTracer struct {
	ctrl     *gomock.Controller
	recorder *MockTracerMockRecorder
}

// MockTracerMockRecorder is the mock recorder for MockTracer
type MockTracerMockRecorder struct {
	mock *MockTracer
}

// NewMockTracer creates a new mock instance
func NewMockTracer(ctrl *gomock.Controller) *MockTracer {
	mock := &MockTracer{ctrl: ctrl}
	mock.recorder = &MockTracerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTracer) EXPECT() *MockTracerMockRecorder {
	return m.recorder
}

// StartSpan mocks base method
func (m *MockTracer) StartSpan(ctx context.Context, name string) (context.Context, *trace.Span) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartSpan", ctx, name)
	ret0, _ := ret[0].(context.Context)
	ret1, _ := ret[1].(*trace.Span)
	return ret0, ret1
}

// StartSpan indicates an expected call of StartSpan
func (mr *MockTracerMockRecorder) StartSpan(ctx, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartSpan", reflect.TypeOf((*MockTracer)(nil).StartSpan), ctx, name)
}

// StartSpanWithAttributes mocks base method
func (m *MockTracer) StartSpanWithAttributes(ctx context.Context, name string, attrs ...trace.Attribute) (context.Context, *trace.Span) {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx, name}
	for _, a := range attrs {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "StartSpanWithAttributes", varargs...)
	ret0, _ := ret[0].(context.Context)
	ret1, _ := ret[1].(*trace.Span)
	return ret0, ret1
}

// StartSpanWithAttributes indicates an expected call of StartSpanWithAttributes
func (mr *MockTracerMockRecorder) StartSpanWithAttributes(ctx, name interface{}, attrs ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx, name}, attrs...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartSpanWithAttributes", reflect.TypeOf((*MockTracer)(nil).StartSpanWithAttributes), varargs...)
}

// StartServiceSpan mocks base method
func (m *MockTracer) StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartServiceSpan", ctx, serviceName, methodName)
	ret0, _ := ret[0].(context.Context)
	ret1, _ := ret[1].(*trace.Span)
	return ret0, ret1
}

// StartServiceSpan indicates an expected call of StartServiceSpan
func (mr *MockTracerMockRecorder) StartServiceSpan(ctx, serviceName, methodName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartServiceSpan", reflect.TypeOf((*MockTracer)(nil).StartServiceSpan), ctx, serviceName, methodName)
}

// EndSpan mocks base method
func (m *MockTracer) EndSpan(span *trace.Span, err error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "EndSpan", span, err)
}

// EndSpan indicates an expected call of EndSpan
func (mr *MockTracerMockRecorder) EndSpan(span, err interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EndSpan", reflect.TypeOf((*MockTracer)(nil).EndSpan), span, err)
}

// AddAttribute mocks base method
func (m *MockTracer) AddAttribute(ctx context.Context, key string, value interface{}) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AddAttribute", ctx, key, value)
}

// AddAttribute indicates an expected call of AddAttribute
func (mr *MockTracerMockRecorder) AddAttribute(ctx, key, value interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddAttribute", reflect.TypeOf((*MockTracer)(nil).AddAttribute), ctx, key, value)
}

// MarkSpanError mocks base method
func (m *MockTracer) MarkSpanError(ctx context.Context, err error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "MarkSpanError", ctx, err)
}

// MarkSpanError indicates an expected call of MarkSpanError
func (mr *MockTracerMockRecorder) MarkSpanError(ctx, err interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkSpanError", reflect.TypeOf((*MockTracer)(nil).MarkSpanError), ctx, err)
}

// TraceMethod mocks base method
func (m *MockTracer) TraceMethod(ctx context.Context, serviceName, methodName string, f func(context.Context) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceMethod", ctx, serviceName, methodName, f)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceMethod indicates an expected call of TraceMethod
func (mr *MockTracerMockRecorder) TraceMethod(ctx, serviceName, methodName, f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceMethod", reflect.TypeOf((*MockTracer)(nil).TraceMethod), ctx, serviceName, methodName, f)
}

// TraceMethodWithResultAny mocks base method
func (m *MockTracer) TraceMethodWithResultAny(ctx context.Context, serviceName, methodName string, f func(context.Context) (interface{}, error)) (interface{}, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceMethodWithResultAny", ctx, serviceName, methodName, f)
	ret0 := ret[0]
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TraceMethodWithResultAny indicates an expected call of TraceMethodWithResultAny
func (mr *MockTracerMockRecorder) TraceMethodWithResultAny(ctx, serviceName, methodName, f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceMethodWithResultAny", reflect.TypeOf((*MockTracer)(nil).TraceMethodWithResultAny), ctx, serviceName, methodName, f)
}

// WrapHTTPClient mocks base method
func (m *MockTracer) WrapHTTPClient(client *http.Client) *http.Client {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WrapHTTPClient", client)
	ret0, _ := ret[0].(*http.Client)
	return ret0
}

// WrapHTTPClient indicates an expected call of WrapHTTPClient
func (mr *MockTracerMockRecorder) WrapHTTPClient(client interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WrapHTTPClient", reflect.TypeOf((*MockTracer)(nil).WrapHTTPClient), client)
}
