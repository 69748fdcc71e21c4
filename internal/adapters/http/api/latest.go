// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/okian/curvecast/internal/domain/fitting"
)

// LatestHandler serves a single snapshot without opening a stream.
type LatestHandler struct {
	deps Dependencies
}

// NewLatestHandler creates a new latest-snapshot handler.
func NewLatestHandler(deps Dependencies) *LatestHandler {
	return &LatestHandler{deps: deps}
}

// HandleLatest handles GET /curves/latest requests. It advances the shared
// state by one tick, like a single stream beat.
func (h *LatestHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	const op = "api.curves_latest"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap, err := h.deps.BuildSnapshot(r.Context())
	if err != nil {
		if errors.Is(err, fitting.ErrZeroVariance) {
			writeError(w, http.StatusBadRequest, "degenerate_input", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
