package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the usecase error taxonomy onto HTTP statuses. Technical
// errors stay generic: internals never reach the caller.
func writeError(w http.ResponseWriter, resource string, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeForbidden:
			status = http.StatusForbidden
			middleware.RecordAuthorizationDenied(resource)
		case usecase.CodeValidationError:
			status = http.StatusUnprocessableEntity
		case usecase.CodeConflict:
			status = http.StatusConflict
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": domainErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "something went wrong, please try again later",
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// notFoundOrInternal lets direct repository reads speak the same error
// language as the usecases.
func notFoundOrInternal(err error) error {
	switch {
	case errors.Is(err, entity.ErrServiceNotFound),
		errors.Is(err, entity.ErrCampaignNotFound),
		errors.Is(err, entity.ErrLeadNotFound),
		errors.Is(err, entity.ErrContractNotFound),
		errors.Is(err, entity.ErrClientNotFound):
		return &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()}
	}
	return err
}
