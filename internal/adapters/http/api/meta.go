// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// Service identity served on the root endpoint.
const (
	serviceName        = "Emerging Market Swap Curve Fitter"
	serviceDescription = "Streams synthetic emerging market swap curves and their polynomial fits as server-sent events."
)

// metaResponse mirrors the root metadata payload.
type metaResponse struct {
	Service                string  `json:"service"`
	Description            string  `json:"description"`
	StreamEndpoint         string  `json:"streamEndpoint"`
	LatestEndpoint         string  `json:"latestEndpoint"`
	HistoryEndpoint        string  `json:"historyEndpoint"`
	HealthEndpoint         string  `json:"healthEndpoint"`
	DocsEndpoint           string  `json:"docsEndpoint"`
	DefaultIntervalSeconds float64 `json:"defaultIntervalSeconds"`
}

// MetaHandler serves service metadata and helpful links.
type MetaHandler struct {
	defaultInterval time.Duration
}

// NewMetaHandler creates a new metadata handler.
func NewMetaHandler(defaultInterval time.Duration) *MetaHandler {
	return &MetaHandler{defaultInterval: defaultInterval}
}

// HandleMeta handles GET / requests.
func (h *MetaHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	// "/" matches every otherwise-unrouted path on a ServeMux.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, metaResponse{
		Service:                serviceName,
		Description:            serviceDescription,
		StreamEndpoint:         "/curves/stream",
		LatestEndpoint:         "/curves/latest",
		HistoryEndpoint:        "/curves/history",
		HealthEndpoint:         "/health",
		DocsEndpoint:           "/api-docs",
		DefaultIntervalSeconds: h.defaultInterval.Seconds(),
	})
}
