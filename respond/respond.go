// Package respond writes JSON responses and the uniform error envelope
// shared by every route.
package respond

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the uniform envelope {"error":{"status":...,"message":...}}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorEnvelope{Error: errorBody{Status: status, Message: message}})
}
