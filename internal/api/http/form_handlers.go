package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	auth "github.com/opstat/opstat/internal/auth/middleware"
	"github.com/opstat/opstat/internal/form"
	"github.com/opstat/opstat/internal/identity"
)

// refFromQuery builds a dual-mode position reference: ?module= / ?topic=
// carry stable IDs, ?moduleIndex= / ?topicIndex= the legacy 1-based
// priority positions. IDs win when both are present.
func refFromQuery(r *http.Request, idParam, indexParam string) form.Ref {
	if id := r.URL.Query().Get(idParam); id != "" {
		return form.ByID(id)
	}
	if n, err := strconv.Atoi(r.URL.Query().Get(indexParam)); err == nil && n >= 1 {
		return form.ByPriority(n)
	}
	return form.Ref{}
}

func companyFromQuery(r *http.Request, companyScope bool) string {
	if !companyScope {
		return ""
	}
	return r.URL.Query().Get("company")
}

func currentUser(r *http.Request, users identity.Store) (identity.User, bool) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == "" {
		return identity.User{}, false
	}
	u, err := users.GetUser(r.Context(), sub)
	if err != nil {
		return identity.User{}, false
	}
	return u, true
}

// GET /form?module=&topic=&moduleIndex=&topicIndex=&company=
func GetFormHandler(svc *form.Service, users identity.Store, companyScope bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r, users)
		if !ok {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		view, err := svc.FormAt(r.Context(),
			refFromQuery(r, "module", "moduleIndex"),
			refFromQuery(r, "topic", "topicIndex"),
			u, companyFromQuery(r, companyScope))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(view)
	}
}

// GET /form/next and /form/previous step from the supplied position and
// render the destination topic, skipping content the role cannot see.
func NextFormHandler(svc *form.Service, users identity.Store, companyScope bool) http.HandlerFunc {
	return stepFormHandler(svc, users, companyScope, true)
}

func PreviousFormHandler(svc *form.Service, users identity.Store, companyScope bool) http.HandlerFunc {
	return stepFormHandler(svc, users, companyScope, false)
}

func stepFormHandler(svc *form.Service, users identity.Store, companyScope bool, forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r, users)
		if !ok {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		pos := form.Position{
			ModuleID: r.URL.Query().Get("module"),
			TopicID:  r.URL.Query().Get("topic"),
		}
		var nav form.NavResult
		if forward {
			nav = svc.Next(r.Context(), pos, u.Role)
		} else {
			nav = svc.Previous(r.Context(), pos, u.Role)
		}
		if !nav.OK {
			_ = json.NewEncoder(w).Encode(form.FormView{NoContent: true})
			return
		}
		view, err := svc.FormAt(r.Context(),
			form.ByID(nav.Position.ModuleID), form.ByID(nav.Position.TopicID),
			u, companyFromQuery(r, companyScope))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		view.IsSameModule = nav.SameModule
		_ = json.NewEncoder(w).Encode(view)
	}
}
