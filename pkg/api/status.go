package api

import (
	"net/http"

	"sibr/fed/pkg/api/types"
	"sibr/fed/pkg/ingest"
)

// StatusReporter reports the progress of the background ingest task.
type StatusReporter interface {
	Status() ingest.Status
}

// IngestStatusHandler serves GET /v1/ingest/status.
type IngestStatusHandler struct {
	task StatusReporter
}

// NewIngestStatusHandler creates the ingest status handler.
func NewIngestStatusHandler(task StatusReporter) *IngestStatusHandler {
	return &IngestStatusHandler{task: task}
}

func (h *IngestStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	types.WriteJSON(w, http.StatusOK, h.task.Status())
}
