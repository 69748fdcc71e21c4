package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/curvecast/internal/domain/mutation"
	"github.com/okian/curvecast/internal/streamprobe"
)

// Default probe run bound.
const defaultProbeTimeout = 10 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", streamprobe.DefaultBaseURL, "Base URL of the service")
		frames   = flag.Int("frames", streamprobe.DefaultFrames, "Number of stream frames to consume and verify")
		interval = flag.Float64("interval", streamprobe.DefaultIntervalSeconds, "Requested tick interval in seconds")
		timeout  = flag.Duration("timeout", streamprobe.DefaultTimeout, "HTTP request timeout for non-streaming calls")
		logFile  = flag.String("log", "", "Log file for probe output (default: probe_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every verified frame")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		streamprobe.ShowHelp()
		return
	}

	// Setup logging
	if err := streamprobe.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context bounding the whole run
	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	// Create probe configuration
	config := &streamprobe.Config{
		BaseURL:             *baseURL,
		Frames:              *frames,
		IntervalSeconds:     *interval,
		Timeout:             *timeout,
		LogFile:             *logFile,
		Verbose:             *verbose,
		MaxMutationFraction: mutation.DefaultMaxFraction,
		MinCurveRate:        mutation.DefaultFloor,
	}

	// Run the probe
	if err := streamprobe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		return
	}
}
