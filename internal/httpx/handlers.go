package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/you/go-mestre-flights/internal/config"
	"github.com/you/go-mestre-flights/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// RootHandler serves the static service description.
func RootHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "flight deal scanner is running",
			"endpoints": map[string]string{
				"search":  "/search - five cheapest offers for the configured routes",
				"history": "/history - summaries of recent scans",
				"ws":      "/ws/search - live scan progress over websocket",
			},
			"origin":       cfg.Origin,
			"destinations": cfg.Destinations,
		})
	}
}

// SearchHandler runs a full grid scan. Per-pair failures are absorbed by the
// orchestrator; only a scan-level failure produces a 500, and never a stack
// trace.
func SearchHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.RunSearch(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("search run failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Message: res.Message,
				Error:   err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func HistoryHandler(hist *service.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, hist.Recent())
	}
}
