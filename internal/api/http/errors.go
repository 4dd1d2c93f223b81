package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/security"
)

var (
	errBadRequest   = errors.New("bad request")
	errMissingToken = errors.New("authorization token is not provided")
)

// ProblemDetails follows RFC 7807. Code names the error kind.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// classify maps an error to its HTTP status and problem code.
func classify(err error) (int, string) {
	switch {
	case domain.IsOfferError(err):
		return http.StatusUnprocessableEntity, domain.ErrorCode(err)
	case errors.Is(err, domain.ErrRegionNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrorCode(err)
	case errors.Is(err, domain.ErrCartService):
		return http.StatusBadGateway, domain.ErrorCode(err)
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, security.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errMissingToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled request error", "path", r.URL.Path, "error", err)
		detail = "internal error"
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&ProblemDetails{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Code:     code,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// decodeJSON reads a JSON request body of at most 1MB into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}
