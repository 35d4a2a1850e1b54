// Package api exposes the storefront and admin-console HTTP surface.
package api

import (
	"encoding/json"
	"net/http"
)

// All responses use the envelope convention: {success, message?, ...}.

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondData writes a success envelope carrying a data field.
func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, map[string]any{"success": true, "data": data})
}

// respondFields writes a success envelope with caller-chosen top-level
// fields (e.g. "products", "token" + "user").
func respondFields(w http.ResponseWriter, status int, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	respondJSON(w, status, payload)
}

// respondMessage writes a success envelope with only a message.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": true, "message": message})
}

// respondError writes a failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}
