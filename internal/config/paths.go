package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the resolved file locations for one run.
// Relative paths in the configuration are resolved against the working directory.
type Paths struct {
	WorkDir    string
	InputFile  string
	OutputFile string
	LogFile    string
}

// GetPaths resolves the configured paths against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(cfg, wd), nil
}

// ResolvePaths resolves the configured paths against base
func ResolvePaths(cfg *Config, base string) *Paths {
	return &Paths{
		WorkDir:    base,
		InputFile:  resolve(base, cfg.Input.Path),
		OutputFile: resolve(base, cfg.Output.Path),
		LogFile:    resolve(base, cfg.Logging.FilePath),
	}
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// EnsureOutputDir creates the directory that will hold the output file
func (p *Paths) EnsureOutputDir() error {
	dir := filepath.Dir(p.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution",
		slog.String("work_dir", p.WorkDir),
		slog.String("input_file", p.InputFile),
		slog.String("output_file", p.OutputFile),
		slog.String("log_file", p.LogFile))
}
