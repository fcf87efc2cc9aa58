package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
	"github.com/talentpipehq/talentpipe/pkg/slogx"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// validationResponse carries per-field messages so clients can annotate the
// offending form inputs.
type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// listResponse is the envelope for every collection endpoint.
type listResponse[T any] struct {
	Data []T `json:"data"`
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse[T]{Data: items})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, errorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}

func writeNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, errorResponse{
		Error:            "not_found",
		ErrorDescription: "resource not found",
	})
}

func writeValidation(w http.ResponseWriter, fields map[string]string) {
	httpx.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
		Error:  "validation_error",
		Fields: fields,
	})
}

func writeServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "error", err)
	httpx.WriteJSON(w, http.StatusInternalServerError, errorResponse{
		Error:            "server_error",
		ErrorDescription: msg,
	})
}

// writeStoreError handles the common not-found/internal split for reads.
func writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w)
		return
	}
	writeServerError(w, r, msg, err)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
