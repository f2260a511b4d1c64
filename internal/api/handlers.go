package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/kdimtricp/trafficwatch/internal/database"
)

const maxListLimit = 100

// App holds the read-only handler dependencies. The API only queries stored
// detections; all writes go through the persistence queue.
type App struct {
	Detections *database.DetectionRepository
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) ListDetectionsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	detections, err := app.Detections.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("failed to list detections: %v", err)
		http.Error(w, "Failed to list detections", http.StatusInternalServerError)
		return
	}

	writeJSON(w, detections)
}

func (app *App) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.Detections.Stats(r.Context())
	if err != nil {
		log.Printf("failed to aggregate stats: %v", err)
		http.Error(w, "Failed to aggregate stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
