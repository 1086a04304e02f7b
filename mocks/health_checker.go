package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

var (
	_ ports.HealthChecker  = (*MockHealthChecker)(nil)
	_ ports.HealthRegistry = (*MockHealthRegistry)(nil)
)

// MockHealthChecker is a mock implementation of ports.HealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

// NewMockHealthChecker creates a MockHealthChecker whose expectations are
// asserted when the test finishes.
func NewMockHealthChecker(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockHealthChecker {
	m := &MockHealthChecker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthChecker) Name() string {
	return m.Called().String(0)
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockHealthRegistry is a mock implementation of ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

// NewMockHealthRegistry creates a MockHealthRegistry whose expectations are
// asserted when the test finishes.
func NewMockHealthRegistry(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) {
	m.Called(checker)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) map[string]result.Result[struct{}] {
	args := m.Called(ctx)
	return args.Get(0).(map[string]result.Result[struct{}])
}
