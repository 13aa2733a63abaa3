package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

type ContractHandler struct {
	UC   *usecase.ContractUseCase
	Repo usecase.ContractRepository
	Log  usecase.EventLog
}

func NewContractHandler(uc *usecase.ContractUseCase, repo usecase.ContractRepository, log usecase.EventLog) *ContractHandler {
	return &ContractHandler{UC: uc, Repo: repo, Log: log}
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list contracts: " + err.Error())
		writeError(w, "contract", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": contracts})
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	contract, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "contract", notFoundOrInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContractInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	contract, err := h.UC.Create(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		writeError(w, "contract", err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContractInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	contract, err := h.UC.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "contract", err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, "contract", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
