package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

// servicePageSize matches the original listing: services are the only
// paginated collection.
const servicePageSize = 20

type ServiceHandler struct {
	UC   *usecase.ServiceUseCase
	Repo usecase.ServiceRepository
	Log  usecase.EventLog
}

func NewServiceHandler(uc *usecase.ServiceUseCase, repo usecase.ServiceRepository, log usecase.EventLog) *ServiceHandler {
	return &ServiceHandler{UC: uc, Repo: repo, Log: log}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	services, err := h.Repo.List(r.Context(), servicePageSize, (page-1)*servicePageSize)
	if err != nil {
		h.Log.Error("failed to list services: " + err.Error())
		writeError(w, "service", err)
		return
	}
	total, err := h.Repo.Count(r.Context())
	if err != nil {
		h.Log.Error("failed to count services: " + err.Error())
		writeError(w, "service", err)
		return
	}

	pages := (total + servicePageSize - 1) / servicePageSize

	writeJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"page":     page,
		"pages":    pages,
		"total":    total,
	})
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	service, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "service", notFoundOrInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	service, err := h.UC.Create(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		writeError(w, "service", err)
		return
	}
	writeJSON(w, http.StatusCreated, service)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	service, err := h.UC.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "service", err)
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, "service", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
