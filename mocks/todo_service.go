package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

var _ ports.TodoService = (*MockTodoService)(nil)

// MockTodoService is a mock implementation of ports.TodoService.
type MockTodoService struct {
	mock.Mock
}

// NewMockTodoService creates a MockTodoService whose expectations are
// asserted when the test finishes.
func NewMockTodoService(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockTodoService {
	m := &MockTodoService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTodoService) ListTodos(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo] {
	args := m.Called(ctx, filter)
	return args.Get(0).(result.Result[[]todo.Todo])
}

func (m *MockTodoService) GetTodo(ctx context.Context, id int64) result.Result[*todo.Todo] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoService) CreateTodo(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo] {
	args := m.Called(ctx, t)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, id int64, patch todo.Patch) result.Result[*todo.Todo] {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(result.Result[*todo.Todo])
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, id int64) result.Result[struct{}] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[struct{}])
}

func (m *MockTodoService) BulkUpdateTodos(ctx context.Context, updates []ports.TodoUpdate) []result.Result[*todo.Todo] {
	args := m.Called(ctx, updates)
	return args.Get(0).([]result.Result[*todo.Todo])
}

func (m *MockTodoService) Progress(ctx context.Context, filter todo.Filter) result.Result[int] {
	args := m.Called(ctx, filter)
	return args.Get(0).(result.Result[int])
}
