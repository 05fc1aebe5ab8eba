package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"sppages/application"
	"sppages/domain/clientside"
	"sppages/domain/sharepoint"
	"sppages/logging"
)

// maxBodyBytes bounds request bodies, layouts included.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error             string `json:"error"`
	ServerRelativeURL string `json:"serverRelativeUrl,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Warn("Failed to encode response", "error", err)
	}
}

// writeError maps service and remote errors to HTTP statuses.
func writeError(w http.ResponseWriter, logger *logging.Logger, err error) {
	status := statusForError(err)
	body := errorResponse{Error: err.Error()}

	var partial *clientside.PartialCreateError
	if errors.As(err, &partial) {
		body.ServerRelativeURL = partial.ServerRelativeURL
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", status, "error", err)
	} else {
		logger.Debug("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func statusForError(err error) int {
	var partial *clientside.PartialCreateError
	switch {
	case errors.As(err, &partial):
		return http.StatusBadGateway
	case errors.Is(err, application.ErrInvalidRequest),
		errors.Is(err, clientside.ErrInvalidLayout),
		errors.Is(err, clientside.ErrInvalidFactor),
		errors.Is(err, clientside.ErrInvalidLayoutType),
		errors.Is(err, clientside.ErrInvalidPageName):
		return http.StatusBadRequest
	case errors.Is(err, clientside.ErrDuplicateName), errors.Is(err, sharepoint.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, clientside.ErrNotClientSidePage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sharepoint.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sharepoint.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, sharepoint.ErrETagMismatch):
		return http.StatusPreconditionFailed
	case errors.Is(err, sharepoint.ErrRemote), errors.Is(err, sharepoint.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidRequest, err)
	}
	return nil
}

// readBody reads a bounded raw body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrInvalidRequest, err)
	}
	return data, nil
}
