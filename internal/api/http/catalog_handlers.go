package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/rbac"
)

// ListModulesHandler returns the active modules in priority order. The
// catalog itself is role-neutral; topic and question visibility is filtered
// per role in ListTopicsHandler and by the form engine.
func ListModulesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mods, err := store.ListModules(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := mods[:0]
		for _, m := range mods {
			if m.Active {
				out = append(out, m)
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// GET /catalog/modules/{moduleID}/topics — only the topics granted to the
// caller's role.
func ListTopicsHandler(store catalog.Store, filter *access.Filter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID := chi.URLParam(r, "moduleID")
		if _, err := store.GetModule(r.Context(), moduleID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				http.Error(w, "module not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		role := rbac.RoleFromContext(r.Context())
		allowed := filter.AllowedTopics(r.Context(), role)

		topics, err := store.ListTopics(r.Context(), moduleID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]catalog.Topic, 0, len(topics))
		for _, t := range topics {
			if t.Active && allowed.Has(t.ID) {
				out = append(out, t)
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
