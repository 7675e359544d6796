package rest

import "net/http"

// Healthz handles GET /health.
func Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gigvora-backend",
	})
}
