// Command custclean cleans a delimited customer purchase file and exports the
// result to an .xlsx workbook.
//
// Usage:
//
//	custclean [-in data/dataset.txt] [-out Cleaned_Customer_Data.xlsx] [-delimiter ,]
//
// Flags override the configuration file and CUSTCLEAN_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custclean/internal/app"
	"custclean/internal/config"
	apperrors "custclean/internal/errors"
	"custclean/internal/infrastructure"
	"custclean/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one cleaning run and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input delimited file (defaults to "+config.DefaultInputPath+")")
	outPath := fs.String("out", "", "output .xlsx file (defaults to "+config.DefaultOutputPath+")")
	delimiter := fs.String("delimiter", "", "single-character field delimiter (defaults to "+config.DefaultDelimiter+")")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return apperrors.ExitUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return apperrors.ExitOK
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return apperrors.ExitFailure
	}

	if *inPath != "" {
		cfg.Input.Path = *inPath
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *delimiter != "" {
		cfg.Input.Delimiter = *delimiter
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return apperrors.ExitFailure
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting customer data cleaning",
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Input.Path),
		slog.String("output", cfg.Output.Path),
		slog.Bool("audit_enabled", cfg.Audit.Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg, logger, app.WithConsole(stdout))
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		return apperrors.ExitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	if _, err := application.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", apperrors.Title(err), err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}
