package middleware

import (
	"encoding/json"
	"net/http"

	"authbackend/handlers"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, handlers.ApiResponse{Success: false, Message: msg})
}

func writeErrorDetail(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, handlers.ApiResponse{Success: false, Message: msg, Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload handlers.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
