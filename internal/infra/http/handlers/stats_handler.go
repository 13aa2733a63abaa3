package handlers

import (
	"net/http"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

type StatsHandler struct {
	UC *usecase.CampaignStatsUseCase
}

func NewStatsHandler(uc *usecase.CampaignStatsUseCase) *StatsHandler {
	return &StatsHandler{UC: uc}
}

// Get renders the campaign statistics report. When aggregation fails the
// usecase already logged the cause and returned an empty report, so the
// endpoint still answers 200 with zeroed figures instead of failing the page.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, _ := h.UC.Execute(r.Context(), middleware.ActorFrom(r.Context()))
	writeJSON(w, http.StatusOK, report)
}
