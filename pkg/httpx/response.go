package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Resource responses are always tenant-scoped so shared caches must never
// hold them.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteAuthRequired writes the 401 response the SDK understands. The
// authRequired field is the in-band sentinel: clients check the body, not
// just the status code, so proxies that rewrite statuses don't break the
// sign-in flow.
func WriteAuthRequired(w http.ResponseWriter, desc string) {
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"authRequired":      true,
		"error":             "auth_required",
		"error_description": desc,
	})
}
