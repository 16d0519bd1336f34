package loadtest

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/mergington/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger on stdout and, if logFile is
// set, mirrors records into it.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
	}
	if err := logger.InitWithWriter(w); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the load tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Mergington Signup Load Tool
===========================

Submits concurrent signups to a running activities service and verifies
that every accepted signup shows up exactly once in GET /activities.

Usage:
  go run ./cmd/signup-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -signups int
        Number of unique signups to generate (default 1000)
  -duplicates float
        Share of signups to resubmit, 0..1 (default 0.1)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write generated signups to this JSON file
  -log string
        Mirror log output to this file
  -verbose
        Log every signup
  -help
        Show this help message

Examples:
  go run ./cmd/signup-load -signups 5000 -workers 32
  go run ./cmd/signup-load -url http://localhost:8080 -duplicates 0.5 -verbose
`)
}
