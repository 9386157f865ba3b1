package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"custclean/internal/errors"
)

// FileValidator checks the input and output locations before a run starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path exists, is a regular file and can be opened
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return errors.NewNotFoundError("input file", err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return errors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewPermissionError("input file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputFile checks that path names a workbook and that its directory
// exists (or can be created) and is writable
func (v *FileValidator) ValidateOutputFile(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		v.logger.Error("Output file is not an .xlsx workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewAppValidationError(fmt.Sprintf("output file %s must have the .xlsx extension", path))
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Error("Output file is an Excel lock file",
			slog.String("file", path))
		return errors.NewAppValidationError(fmt.Sprintf("output file %s is an Excel lock file name", path))
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.NewAppValidationError(fmt.Sprintf("output path %s is a directory", path))
	}

	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewExportError("failed to create output directory", err).WithContext("directory", dir)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewPermissionError("output directory is not writable", err).WithContext("directory", dir)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
