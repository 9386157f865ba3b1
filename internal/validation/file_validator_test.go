package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "custclean/internal/errors"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
	}{
		{
			name: "readable file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "dataset.txt")
				require.NoError(t, os.WriteFile(path, []byte("custID\n"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.txt")
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputFile(tt.setupFunc(t))
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestFileValidator_ValidateOutputFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "taken.xlsx"), 0755))

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"new nested directory", filepath.Join(dir, "a", "b", "out.xlsx"), ""},
		{"upper-case extension", filepath.Join(dir, "OUT.XLSX"), ""},
		{"wrong extension", filepath.Join(dir, "out.csv"), apperrors.ErrTypeValidation},
		{"lock file", filepath.Join(dir, "~$out.xlsx"), apperrors.ErrTypeValidation},
		{"directory in the way", filepath.Join(dir, "taken.xlsx"), apperrors.ErrTypeValidation},
		{"parent is a file", filepath.Join(blocker, "out.xlsx"), apperrors.ErrTypeExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateOutputFile(tt.path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				assert.DirExists(t, filepath.Dir(tt.path))
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestFileValidator_ValidateOutputDirectoryLeavesNoProbe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileValidator(nil).ValidateOutputDirectory(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
