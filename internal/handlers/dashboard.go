package handlers

import (
	"context"
	"net/http"

	"gizindir-panel/internal/models"

	"github.com/rs/zerolog/log"
)

const dashboardFailed = "Panel verileri getirilirken bir hata oluştu"

// CountsProvider aggregates per-entity record counts
type CountsProvider interface {
	Counts(ctx context.Context) (*models.Counts, error)
}

// DashboardHandler serves the dashboard aggregate
type DashboardHandler struct {
	counts CountsProvider
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(counts CountsProvider) *DashboardHandler {
	return &DashboardHandler{counts: counts}
}

// GetCounts handles GET /api/dashboard
func (h *DashboardHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.counts.Counts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to aggregate dashboard counts")
		respondError(w, dashboardFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, counts)
}
