package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/wizard"
)

const msgUnexpected = "An unexpected error occurred"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorBody is the failure envelope. Fields is set for validation errors.
type errorBody struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Fields  domain.FieldErrors `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeErr maps err onto a status and writes the failure envelope.
// Unexpected errors are not echoed to the client.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		body.Fields = invalid.Fields
	}
	if status == http.StatusInternalServerError {
		s.log.Error(err, "request failed", "method", r.Method, "path", r.URL.Path)
		body.Error = msgUnexpected
	}
	writeJSON(w, status, body)
}

// requestError is a client mistake detected by a handler.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{status: http.StatusBadRequest, msg: msg} }

func notFound(msg string) error { return &requestError{status: http.StatusNotFound, msg: msg} }

func statusFor(err error) int {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status
	}
	switch {
	case errors.Is(err, domaintypes.ErrValidation),
		errors.Is(err, domaintypes.ErrUploadRejected),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrTierDisabled),
		errors.Is(err, wizard.ErrNotOnSummary):
		return http.StatusBadRequest
	case errors.Is(err, domaintypes.ErrConflict),
		errors.Is(err, wizard.ErrSubmitPending):
		return http.StatusConflict
	case errors.Is(err, domaintypes.ErrBackendUnavailable),
		errors.Is(err, errTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, wizard.ErrClosed):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
