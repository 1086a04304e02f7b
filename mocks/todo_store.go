// Package mocks holds testify mocks for the port interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

var _ ports.TodoStore = (*MockTodoStore)(nil)

// MockTodoStore is a mock implementation of ports.TodoStore.
type MockTodoStore struct {
	mock.Mock
}

// NewMockTodoStore creates a MockTodoStore whose expectations are asserted
// when the test finishes.
func NewMockTodoStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockTodoStore {
	m := &MockTodoStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTodoStore) List(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo] {
	args := m.Called(ctx, filter)
	return args.Get(0).(result.Result[[]todo.Todo])
}

func (m *MockTodoStore) Get(ctx context.Context, id int64) result.Result[*todo.Todo] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoStore) Create(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo] {
	args := m.Called(ctx, t)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoStore) Update(ctx context.Context, id int64, t *todo.Todo) result.Result[*todo.Todo] {
	args := m.Called(ctx, id, t)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoStore) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[struct{}])
}
