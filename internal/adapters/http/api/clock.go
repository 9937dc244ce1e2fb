package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/simreveal/internal/domain/model"
)

// ClockHandler serves and accepts league clocks.
type ClockHandler struct {
	deps Dependencies
}

// NewClockHandler creates a new clock handler.
func NewClockHandler(deps Dependencies) *ClockHandler {
	return &ClockHandler{deps: deps}
}

type timestampResponse struct {
	League    string          `json:"league"`
	Family    string          `json:"family"`
	Version   string          `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Timestamp model.Timestamp `json:"timestamp"`
}

// HandleGetTimestamp handles GET /v1/leagues/{league}/timestamp.
func (h *ClockHandler) HandleGetTimestamp(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	snap, err := h.deps.Timestamp(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timestampResponse{
		League:    l.String(),
		Family:    l.Family().String(),
		Version:   snap.Version,
		UpdatedAt: snap.UpdatedAt,
		Timestamp: snap.Timestamp,
	})
}

// HandlePutTimestamp handles PUT /v1/leagues/{league}/timestamp. The body
// is the clock in the shape of the league's family.
func (h *ClockHandler) HandlePutTimestamp(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	ts, err := model.DecodeTimestamp(l, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.deps.SubmitTimestamp(r.Context(), l, ts); err != nil {
		writeServiceError(w, err)
		return
	}
	accepted(w, l)
}
