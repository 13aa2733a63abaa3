package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

// ClientHandler has no Create route. Clients only come into existence
// through the lead conversion flow.
type ClientHandler struct {
	UC   *usecase.ClientUseCase
	Repo usecase.ClientRepository
	Log  usecase.EventLog
}

func NewClientHandler(uc *usecase.ClientUseCase, repo usecase.ClientRepository, log usecase.EventLog) *ClientHandler {
	return &ClientHandler{UC: uc, Repo: repo, Log: log}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list clients: " + err.Error())
		writeError(w, "client", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "client", notFoundOrInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ClientUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	client, err := h.UC.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "client", err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, "client", err)
		return
	}
	middleware.RecordClientDeletion()
	w.WriteHeader(http.StatusNoContent)
}
