package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON renders v with the given status. Encoding failures are logged
// rather than surfaced; the status line is already on the wire by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

// errorResponse is the envelope for rejected requests. Search degradations
// (provider failures, empty results) are not errors; they travel inside the
// 200 envelope as sourceStats and warning.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError renders the error envelope. An empty message falls back to the
// standard status text.
func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
