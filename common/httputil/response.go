package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Envelope is the uniform response wrapper returned by every API endpoint.
type Envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Count     *int      `json:"count,omitempty"`
	Type      string    `json:"type,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// WriteList writes a success envelope with an item count and source type tag.
func WriteList(w http.ResponseWriter, data any, count int, listType string) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Count:     &count,
		Type:      listType,
		Timestamp: time.Now(),
	})
}

// WriteError writes an error envelope with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now(),
	})
}
