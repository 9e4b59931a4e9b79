// Package mocks holds testify mocks for the ports interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"
	"weatherview.app/internal/ports"
)

// Logger is a mock of ports.Logger. Fields are passed as a single []ports.Field argument.
type Logger struct {
	mock.Mock
}

func (m *Logger) Debug(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Info(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Warn(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Error(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

// NewLogger creates a Logger that asserts its expectations when the test ends.
func NewLogger(t mock.TestingT) *Logger {
	m := &Logger{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// NewQuietLogger creates a Logger accepting any call at any level.
func NewQuietLogger(t mock.TestingT) *Logger {
	m := NewLogger(t)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}
