package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

type CampaignHandler struct {
	UC   *usecase.CampaignUseCase
	Repo usecase.CampaignRepository
	Log  usecase.EventLog
}

func NewCampaignHandler(uc *usecase.CampaignUseCase, repo usecase.CampaignRepository, log usecase.EventLog) *CampaignHandler {
	return &CampaignHandler{UC: uc, Repo: repo, Log: log}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list campaigns: " + err.Error())
		writeError(w, "campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "campaign", notFoundOrInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	campaign, err := h.UC.Create(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		writeError(w, "campaign", err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	campaign, err := h.UC.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, "campaign", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
