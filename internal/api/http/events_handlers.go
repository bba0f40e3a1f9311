package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/opstat/opstat/internal/audit"
)

// GET /events?limit= — newest first, admin/reviewer surface.
func ListEventsHandler(log audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := log.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(events)
	}
}
