package fault_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-result/pkg/fault"
)

func TestFactories_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		got      fault.Error
		wantCode string
		wantDesc string
		wantType fault.Type
	}{
		{"Failure", fault.Failure(), "Failure", "A failure has occurred.", fault.TypeFailure},
		{"NotFound", fault.NotFound(), "NotFound", "The resource was not found.", fault.TypeNotFound},
		{"Validation", fault.Validation(), "Validation", "Validation failed.", fault.TypeValidation},
		{"Conflict", fault.Conflict(), "Conflict", "A conflict occurred.", fault.TypeConflict},
		{"Unexpected", fault.Unexpected(), "Unexpected", "An unexpected error occurred.", fault.TypeUnexpected},
		{"Unauthorized", fault.Unauthorized(), "Unauthorized", "The request is not authorized.", fault.TypeUnauthorized},
		{"Forbidden", fault.Forbidden(), "Forbidden", "Access to the resource is forbidden.", fault.TypeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCode, tt.got.Code)
			assert.Equal(t, tt.wantDesc, tt.got.Description)
			assert.Equal(t, tt.wantType, tt.got.Type)
		})
	}
}

func TestFactories_OverrideCodeAndDescription(t *testing.T) {
	t.Parallel()

	got := fault.NotFound(fault.WithCode("VAL001"), fault.WithDescription("Not Found error"))

	assert.Equal(t, fault.Custom("VAL001", "Not Found error", fault.TypeNotFound), got)
}

func TestFactories_OverrideOnlyCode(t *testing.T) {
	t.Parallel()

	got := fault.Conflict(fault.WithCode("C42"))

	assert.Equal(t, "C42", got.Code)
	assert.Equal(t, "A conflict occurred.", got.Description)
}

func TestFactories_EmptyStringsAllowed(t *testing.T) {
	t.Parallel()

	got := fault.Validation(fault.WithCode(""), fault.WithDescription(""))

	assert.Empty(t, got.Code)
	assert.Empty(t, got.Description)
	assert.Equal(t, fault.TypeValidation, got.Type)
}

func TestCustom(t *testing.T) {
	t.Parallel()

	got := fault.Custom("VAL001", "Unauthorized Error", fault.TypeUnauthorized)

	assert.Equal(t, "VAL001", got.Code)
	assert.Equal(t, "Unauthorized Error", got.Description)
	assert.Equal(t, fault.TypeUnauthorized, got.Type)
}

func TestError_ValueEquality(t *testing.T) {
	t.Parallel()

	a := fault.Custom("E01", "Some error", fault.TypeUnexpected)
	b := fault.Error{Code: "E01", Description: "Some error", Type: fault.TypeUnexpected}

	assert.True(t, a == b)
	assert.NotEqual(t, a, fault.Custom("E01", "Some error", fault.TypeFailure))
}

func TestError_StringIsCode(t *testing.T) {
	t.Parallel()

	e := fault.Custom("E01", "Some error", fault.TypeUnexpected)

	assert.Equal(t, "E01", e.String())
	assert.Equal(t, "E01", fmt.Sprint(e))
	assert.Empty(t, fault.Error{}.String())
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("failed", slog.Any("error", fault.NotFound(fault.WithCode("TODO_NOT_FOUND"))))

	var entry struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "TODO_NOT_FOUND", entry.Error["code"])
	assert.Equal(t, "The resource was not found.", entry.Error["description"])
	assert.Equal(t, "NotFound", entry.Error["type"])
}

func TestError_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(fault.Conflict())
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"Conflict","description":"A conflict occurred.","type":"Conflict"}`, string(data))

	var decoded fault.Error
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fault.Conflict(), decoded)
}

func TestList_Error(t *testing.T) {
	t.Parallel()

	l := fault.List{
		fault.Validation(fault.WithCode("title"), fault.WithDescription("is required")),
		fault.Conflict(),
	}

	assert.Equal(t, "title: is required; Conflict: A conflict occurred.", l.Error())
	assert.Equal(t, []fault.Type{fault.TypeValidation, fault.TypeConflict}, l.Types())
}

func TestFrom(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, fault.From(nil))
	})

	t.Run("wrapped list", func(t *testing.T) {
		t.Parallel()
		list := fault.List{fault.NotFound(), fault.Forbidden()}
		got := fault.From(fmt.Errorf("loading todo: %w", list))

		assert.Equal(t, []fault.Error(list), got)
		got[0] = fault.Failure()
		assert.Equal(t, fault.NotFound(), list[0], "From must copy")
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		got := fault.From(errors.New("connection refused"))

		require.Len(t, got, 1)
		assert.Equal(t, fault.TypeUnexpected, got[0].Type)
		assert.Equal(t, "Unexpected", got[0].Code)
		assert.Equal(t, "connection refused", got[0].Description)
	})
}
