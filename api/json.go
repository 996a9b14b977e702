package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode json response", slog.Any("err", err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	writeJSON(w, errorResponse{Error: msg, Fields: fields}, status)
}
