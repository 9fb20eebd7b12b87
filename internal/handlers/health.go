package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	version string
	storage string
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler. storage names the active product store.
func NewHealthHandler(version, storage string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		storage: storage,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Storage   string    `json:"storage"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Storage:   h.storage,
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
