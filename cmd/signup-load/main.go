package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/mergington/internal/loadtest"
	"github.com/okian/mergington/pkg/logger"
)

// Default configuration constants.
const (
	defaultSignups        = 1000
	defaultDuplicateRatio = 0.1
	defaultWorkers        = 2 // multiplier for runtime.NumCPU()
	defaultTimeout        = 10 * time.Second
	defaultRunTimeout     = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		signups    = flag.Int("signups", defaultSignups, "Number of unique signups to generate")
		duplicates = flag.Float64("duplicates", defaultDuplicateRatio, "Share of signups to resubmit, 0..1")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write generated signups to this JSON file")
		logFile    = flag.String("log", "", "Mirror log output to this file")
		verbose    = flag.Bool("verbose", false, "Log every signup")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp(os.Stdout)
		return
	}

	if err := loadtest.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:        *baseURL,
		NumSignups:     *signups,
		DuplicateRatio: *duplicates,
		Workers:        *workers,
		Timeout:        *timeout,
		OutputFile:     *outputFile,
		Verbose:        *verbose,
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
}
