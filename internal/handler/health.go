package handler

import "net/http"

// HealthResponse is the body returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
