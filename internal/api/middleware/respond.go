package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gigvora/gigvora-backend/internal/httperr"
	"github.com/gigvora/gigvora-backend/internal/pkg/logger"
)

// Error codes mirrored by the REST layer's envelope.
const (
	codeUnauthorized     = "UNAUTHORIZED"
	codeForbidden        = "FORBIDDEN"
	codeValidationFailed = "VALIDATION_FAILED"
)

type errorEnvelope struct {
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	RequestID string          `json:"request_id,omitempty"`
	Issues    []httperr.Issue `json:"issues,omitempty"`
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, ae *httperr.AuthorizationError) {
	code := codeForbidden
	if status == http.StatusUnauthorized {
		code = codeUnauthorized
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:     ae.Message,
		Code:      code,
		RequestID: logger.FromContext(r.Context()),
	})
}

func writeValidationError(w http.ResponseWriter, r *http.Request, ve *httperr.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:     ve.Message,
		Code:      codeValidationFailed,
		RequestID: logger.FromContext(r.Context()),
		Issues:    ve.Issues,
	})
}
