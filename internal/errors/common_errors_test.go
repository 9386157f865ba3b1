package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewAppValidationError("delimiter must be one character"),
			expected: "[VALIDATION] delimiter must be one character",
		},
		{
			name:     "error with cause",
			err:      NewParsingError("failed to parse input", fmt.Errorf("bare \" in non-quoted field")),
			expected: "[PARSING] failed to parse input: bare \" in non-quoted field",
		},
		{
			name:     "not found error",
			err:      NewNotFoundError("input file", nil),
			expected: "[NOT_FOUND] input file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewNotFoundError("input file", fs.ErrNotExist)
	wrapped := fmt.Errorf("load: %w", err)

	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeNotFound, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeExport, Message: "write failed"}
	err.WithContext("path", "out.xlsx").WithContext("rows", 10)

	assert.Equal(t, "out.xlsx", err.Context["path"])
	assert.Equal(t, 10, err.Context["rows"])
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeStorage, TypeOf(fmt.Errorf("audit: %w", NewStorageError("insert", nil))))
	assert.Equal(t, ErrorType(""), TypeOf(stderrors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))

	assert.True(t, IsType(NewExportError("save", nil), ErrTypeExport))
	assert.False(t, IsType(NewConfigError("bad", nil), ErrTypeExport))
	assert.True(t, IsType(NewPermissionError("denied", nil), ErrTypePermission))
}
