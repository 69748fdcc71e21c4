package streamprobe

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/curvecast/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "probe_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the stream probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Curvecast Stream Probe
======================

A verification client for the curve streaming service: subscribes to the
event stream, checks every snapshot against the published contract and
reports tick latency.

Usage:
  go run cmd/stream-probe/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -frames int
        Number of stream frames to consume and verify (default 20)
  -interval float
        Requested tick interval in seconds (default 0.2)
  -timeout duration
        HTTP request timeout for non-streaming calls (default 30s)
  -log string
        Log file for probe output (default: probe_log_TIMESTAMP.log)
  -verbose
        Log every verified frame
  -help
        Show this help message

Examples:
  # Probe with default settings
  go run cmd/stream-probe/main.go

  # Probe a remote deployment at a faster tick
  go run cmd/stream-probe/main.go -url http://curves.internal:8080 -interval 0.05 -frames 100

  # Probe with verbose output and a custom log file
  go run cmd/stream-probe/main.go -verbose -log my_probe.log
`)
}
