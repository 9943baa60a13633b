package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockIO is a testify mock of the output sink
type MockIO struct {
	mock.Mock
}

// NewMockIO returns a MockIO that accepts any message
func NewMockIO() *MockIO {
	m := &MockIO{}
	m.On("Info", mock.Anything).Maybe()
	m.On("Warning", mock.Anything).Maybe()
	m.On("Error", mock.Anything).Maybe()
	return m
}

func (m *MockIO) Info(msg string)    { m.Called(msg) }
func (m *MockIO) Warning(msg string) { m.Called(msg) }
func (m *MockIO) Error(msg string)   { m.Called(msg) }

// Messages returns the messages sent with the given method
func (m *MockIO) Messages(method string) []string {
	var out []string
	for _, call := range m.Calls {
		if call.Method == method {
			out = append(out, call.Arguments.String(0))
		}
	}
	return out
}
