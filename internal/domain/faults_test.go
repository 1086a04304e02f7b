package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

func TestFaultCatalogue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		got      fault.Error
		wantCode string
		wantDesc string
		wantType fault.Type
	}{
		{
			name:     "todo not found",
			got:      domain.TodoNotFound(42),
			wantCode: domain.CodeTodoNotFound,
			wantDesc: "todo 42 was not found",
			wantType: fault.TypeNotFound,
		},
		{
			name:     "duplicate title",
			got:      domain.DuplicateTitle("Buy milk"),
			wantCode: domain.CodeDuplicateTitle,
			wantDesc: `a todo titled "Buy milk" already exists`,
			wantType: fault.TypeConflict,
		},
		{
			name:     "unavailable",
			got:      domain.Unavailable("todo service is unavailable"),
			wantCode: domain.CodeUnavailable,
			wantDesc: "todo service is unavailable",
			wantType: fault.TypeUnexpected,
		},
		{
			name:     "invalid field",
			got:      domain.InvalidField("progress_percent", "must be 0-100, got 101"),
			wantCode: "INVALID_PROGRESS_PERCENT",
			wantDesc: "progress_percent: must be 0-100, got 101",
			wantType: fault.TypeValidation,
		},
		{
			name:     "invalid indexed field keeps a stable code",
			got:      domain.InvalidField("updates[3].todo_id", "must be a positive integer"),
			wantCode: "INVALID_TODO_ID",
			wantDesc: "updates[3].todo_id: must be a positive integer",
			wantType: fault.TypeValidation,
		},
		{
			name:     "invalid indexed collection",
			got:      domain.InvalidField("updates[0]", "must not be null"),
			wantCode: "INVALID_UPDATES",
			wantDesc: "updates[0]: must not be null",
			wantType: fault.TypeValidation,
		},
		{
			name:     "canceled",
			got:      domain.Canceled(context.Canceled),
			wantCode: domain.CodeCanceled,
			wantDesc: "context canceled",
			wantType: fault.TypeUnexpected,
		},
		{
			name:     "timeout",
			got:      domain.Timeout(1500 * time.Millisecond),
			wantCode: domain.CodeTimeout,
			wantDesc: "the request did not complete within 1.5s",
			wantType: fault.TypeUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, fault.Custom(tt.wantCode, tt.wantDesc, tt.wantType), tt.got)
		})
	}
}
