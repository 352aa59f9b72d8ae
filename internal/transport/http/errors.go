package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// RetryAfterSeconds is advertised on 503 responses.
const RetryAfterSeconds = "1"

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// statusFor maps the catalog error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, domain.ErrVersionConflict), errors.Is(err, committer.ErrVersionConflict):
		return http.StatusConflict, "version_conflict"
	case errors.Is(err, domain.ErrInconsistentState):
		return http.StatusConflict, "inconsistent_state"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	}
	return http.StatusInternalServerError, "internal"
}

// writeError writes err as a JSON error body. Internal errors are logged
// and their message is not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := statusFor(err)

	detail := errorDetail{Code: code, Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		detail.Field = verr.Field
	}

	switch status {
	case http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		detail.Message = http.StatusText(status)
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", RetryAfterSeconds)
	}

	writeJSON(w, status, errorBody{Error: detail})
}
