// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/curvecast/pkg/logger"
	"github.com/okian/curvecast/pkg/metrics"
)

// StreamHandler publishes curve snapshots as server-sent events.
type StreamHandler struct {
	deps            Dependencies
	defaultInterval time.Duration
	logger          logger.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(deps Dependencies, defaultInterval time.Duration) *StreamHandler {
	return &StreamHandler{
		deps:            deps,
		defaultInterval: defaultInterval,
		logger:          logger.Get().Named("stream"),
	}
}

// HandleStream handles GET /curves/stream?interval=SECONDS requests. Each
// tick is written as one `data: <JSON>` event frame; frames are never
// batched. The loop ends when the consumer disconnects or a degenerate
// fit surfaces from the pipeline.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.curves_stream"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	interval := h.defaultInterval
	if raw := r.URL.Query().Get("interval"); raw != "" {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		interval = time.Duration(secs * float64(time.Second))
	}

	// Interval validation happens before any curve state is touched.
	snapshots, errs, err := h.deps.Stream(r.Context(), interval)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_interval", WrapKind(op, ErrBadRequest, err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", NewKind(op, ErrStreamingUnsupported))
		return
	}

	clientID := uuid.New().String()
	h.logger.Info(r.Context(), "stream consumer connected",
		logger.String("client", clientID),
		logger.Duration("interval", interval),
	)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case snap, open := <-snapshots:
			if !open {
				h.logger.Info(r.Context(), "stream closed", logger.String("client", clientID))
				return
			}
			payload, marshalErr := json.Marshal(snap)
			if marshalErr != nil {
				h.logger.Error(r.Context(), "snapshot marshal failed",
					logger.String("client", clientID),
					logger.Error(marshalErr),
				)
				return
			}
			if _, writeErr := fmt.Fprintf(w, "data: %s\n\n", payload); writeErr != nil {
				return
			}
			flusher.Flush()
			metrics.RecordFrameSent()

		case streamErr := <-errs:
			// A degenerate fit is fatal for this consumer's stream; the
			// already-committed mutation stays in place.
			if streamErr != nil {
				h.logger.Error(r.Context(), "stream failed",
					logger.String("client", clientID),
					logger.Error(streamErr),
				)
			}
			return

		case <-r.Context().Done():
			h.logger.Info(r.Context(), "stream consumer disconnected", logger.String("client", clientID))
			return
		}
	}
}
