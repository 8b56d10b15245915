package loader

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/district-quiz/pkg/http/errors"
)

// Summary is the public description of the loaded record set.
type Summary struct {
	Source      string     `json:"source"`
	Ready       bool       `json:"ready"`
	RecordCount int        `json:"record_count"`
	UniqueSets  int        `json:"unique_sets"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Summarize describes a snapshot.
func Summarize(snap Snapshot) Summary {
	s := Summary{
		Source:      snap.Source,
		Ready:       snap.Ready(),
		RecordCount: len(snap.Records),
		UniqueSets:  snap.UniqueSets(),
	}
	if !snap.LoadedAt.IsZero() {
		loadedAt := snap.LoadedAt
		s.LoadedAt = &loadedAt
	}
	if snap.Err != nil {
		s.Error = snap.Err.Error()
	}
	return s
}

// HTTPHandler exposes the catalog over REST.
type HTTPHandler struct {
	catalog *Catalog
	logger  zerolog.Logger
}

func NewHTTPHandler(catalog *Catalog, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog: catalog,
		logger:  logger.With().Str("component", "catalog_http").Logger(),
	}
}

// HandleGet responds with the catalog summary.
// Route: GET /v1/records
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	summary := Summarize(h.catalog.Snapshot())
	status := http.StatusOK
	if !summary.Ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode catalog summary")
	}
}
