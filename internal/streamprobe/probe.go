package streamprobe

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/curvecast/internal/domain/model"
	"github.com/okian/curvecast/pkg/logger"
)

// frame pairs a decoded snapshot with its arrival time.
type frame struct {
	snapshot model.Snapshot
	received time.Time
}

// Run executes the complete stream probe.
func Run(ctx context.Context, config *Config) error {
	runID := uuid.New().String()
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting curve stream probe",
		logger.String("run", runID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("frames", config.Frames),
		logger.Float64("intervalSeconds", config.IntervalSeconds),
		logger.Duration("timeout", config.Timeout),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	frames, err := collectFrames(ctx, config)
	if err != nil {
		return fmt.Errorf("frame collection failed: %w", err)
	}

	if err := verifyFrames(ctx, config, frames); err != nil {
		return fmt.Errorf("frame verification failed: %w", err)
	}

	reportLatency(ctx, config, frames)

	log.Info(ctx, "probe completed", logger.String("run", runID), logger.Int("frames", len(frames)))
	return nil
}

// checkServiceHealth probes /health before subscribing.
func checkServiceHealth(ctx context.Context, config *Config) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	client := &http.Client{Timeout: config.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

// collectFrames subscribes to the stream and decodes the requested number
// of event frames.
func collectFrames(ctx context.Context, config *Config) ([]frame, error) {
	url := fmt.Sprintf("%s/curves/stream?interval=%g", config.BaseURL, config.IntervalSeconds)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build stream request: %w", err)
	}

	// No client timeout here: the stream stays open for the whole run and
	// is bounded by ctx instead.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected stream status %d", resp.StatusCode)
	}

	frames := make([]frame, 0, config.Frames)
	reader := bufio.NewReader(resp.Body)
	for len(frames) < config.Frames {
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return frames, fmt.Errorf("read frame %d: %w", len(frames)+1, readErr)
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue // frame separator
		}

		snap, parseErr := ParseFrame(line)
		if parseErr != nil {
			return frames, fmt.Errorf("frame %d: %w", len(frames)+1, parseErr)
		}
		frames = append(frames, frame{snapshot: snap, received: time.Now()})
	}
	return frames, nil
}

// ParseFrame decodes one `data: <JSON>` event-stream line into a snapshot.
func ParseFrame(line string) (model.Snapshot, error) {
	const prefix = "data: "
	if !strings.HasPrefix(line, prefix) {
		return model.Snapshot{}, fmt.Errorf("%w: missing data prefix", ErrMalformedFrame)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, prefix)), &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return snap, nil
}
