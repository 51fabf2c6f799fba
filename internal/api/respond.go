package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/essay"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/tracker"
	"github.com/mwantia/pathways/pkg/validation"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest     = errors.New("malformed request")
	errUnknownCollege = errors.New("unknown college")
)

type errorResponse struct {
	Error       string                  `json:"error"`
	Description string                  `json:"error_description,omitempty"`
	Fields      []validation.FieldError `json:"fields,omitempty"`
}

// writeJSON encodes body before the status is sent, so a body that cannot
// be encoded turns into a 500 instead of an empty 2xx.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "internal_error"})
	}
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// writeError translates domain errors into HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := validation.Fields(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:       "validation_failed",
			Description: err.Error(),
			Fields:      fields,
		})
		return
	}

	switch {
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Description: err.Error()})
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, tracker.ErrUnknownDocument),
		errors.Is(err, tracker.ErrUnknownTask),
		errors.Is(err, tracker.ErrUnknownSubtask),
		errors.Is(err, essay.ErrUnknownPrompt),
		errors.Is(err, errUnknownCollege):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Description: err.Error()})
	case errors.Is(err, match.ErrEmptySelection):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:       "empty_selection",
			Description: "select at least one college to compare",
		})
	default:
		s.log.Error("Request %s %s [%s] failed: %v", r.Method, r.URL.Path, GetRequestID(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return v, nil
}
