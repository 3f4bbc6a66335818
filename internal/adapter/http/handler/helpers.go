package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/dto"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDepositNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWithdrawalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPlanType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeDays):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
