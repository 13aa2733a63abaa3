package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

type LeadHandler struct {
	UC      *usecase.LeadUseCase
	Convert *usecase.ConvertLeadUseCase
	Repo    usecase.LeadRepository
	Log     usecase.EventLog
}

func NewLeadHandler(uc *usecase.LeadUseCase, convert *usecase.ConvertLeadUseCase, repo usecase.LeadRepository, log usecase.EventLog) *LeadHandler {
	return &LeadHandler{UC: uc, Convert: convert, Repo: repo, Log: log}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list leads: " + err.Error())
		writeError(w, "lead", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "lead", notFoundOrInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	lead, err := h.UC.Create(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		writeError(w, "lead", err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	lead, err := h.UC.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "lead", err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, "lead", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type convertRequest struct {
	ContractID string `json:"contract_id"`
}

// HandleConvert turns the lead into a client against the chosen contract.
func (h *LeadHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	input := usecase.ConvertLeadInput{
		LeadID:     chi.URLParam(r, "id"),
		ContractID: req.ContractID,
	}

	client, err := h.Convert.Execute(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		writeError(w, "conversion", err)
		return
	}

	middleware.RecordConversion()
	writeJSON(w, http.StatusCreated, client)
}
