package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"cancelled", context.Canceled, ExitInterrupted},
		{"wrapped deadline", fmt.Errorf("clean: %w", context.DeadlineExceeded), ExitInterrupted},
		{"not found", NewNotFoundError("input file", nil), ExitFailure},
		{"plain", stderrors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Empty(t, Title(nil))
	assert.Equal(t, "Run cancelled", Title(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, "Input not found", Title(NewNotFoundError("input file", nil)))
	assert.Equal(t, "Input could not be parsed", Title(fmt.Errorf("load: %w", NewParsingError("malformed row", nil))))
	assert.Equal(t, "Export failed", Title(NewExportError("save", nil)))
	assert.Equal(t, "Invalid configuration", Title(NewConfigError("bad driver", nil)))
	assert.Equal(t, "Cleaning failed", Title(stderrors.New("boom")))
}
