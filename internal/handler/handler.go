package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure here can only
	// truncate the body, there is nothing more to report to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps a domain error to its HTTP status and renders the
// structured error body. Unknown errors become an opaque 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		if status >= 500 {
			logger.Error().Err(err).Msg("handler error")
		} else {
			logger.Debug().Str("code", domainErr.Code).Str("message", domainErr.Message).Msg("request rejected")
		}
		writeJSON(w, status, model.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Internal server error",
	})
}

// statusForCode maps stable error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeConflict:
		return http.StatusConflict
	case model.ErrCodeValidation, model.ErrCodeInsufficientStock, model.ErrCodeEmptyCart,
		model.ErrCodeExpired, model.ErrCodeUsageLimitReached:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("invalid request body")
	}
	return nil
}
