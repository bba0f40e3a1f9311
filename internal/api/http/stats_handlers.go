package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/audit"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/submission"
)

var validate = validator.New()

// SaveStatisticsHandler persists a batch of answers for the caller. The
// payload must be a JSON array; malformed payloads are rejected before any
// row is written. Rows for questions the caller's role is not granted are
// reported as failures without being persisted. Row-level failures do not
// roll back the rest of the batch, each failed row comes back with its key
// and cause.
func SaveStatisticsHandler(store submission.Store, users identity.Store, filter *access.Filter, log audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r, users)
		if !ok {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		var rows []submission.Row
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			http.Error(w, "expected JSON array of rows", http.StatusBadRequest)
			return
		}
		for i, row := range rows {
			if err := validate.Struct(row); err != nil {
				http.Error(w, "row "+strconv.Itoa(i)+": "+err.Error(), http.StatusBadRequest)
				return
			}
		}

		allowed := filter.AllowedQuestions(r.Context(), u.Role)
		writable := make([]submission.Row, 0, len(rows))
		var denied []submission.Failure
		for _, row := range rows {
			if !allowed.Has(row.QuestionID) {
				denied = append(denied, submission.Failure{
					Key: submission.Key{
						UserID:     u.ID,
						QuestionID: row.QuestionID,
						Period:     row.Period,
						SubTopicID: row.SubTopicID,
						CompanyID:  row.CompanyID,
					},
					Cause: "question not granted to role",
				})
				continue
			}
			writable = append(writable, row)
		}

		res := submission.SaveBatch(r.Context(), store, u.ID, writable)
		res.Failed = append(res.Failed, denied...)

		data, _ := json.Marshal(map[string]int{"saved": len(res.Saved), "failed": len(res.Failed)})
		_ = log.Append(r.Context(), audit.Event{
			Actor:    u.ID,
			Type:     "BatchSaved",
			Key:      batchKey(rows),
			DataJSON: string(data),
		})

		_ = json.NewEncoder(w).Encode(res)
	}
}

// GET /statistics?period= — everything the caller has saved for one period,
// the bulk read clients use to restore a half-finished month.
func ListStatisticsHandler(store submission.Store, users identity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r, users)
		if !ok {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		period := r.URL.Query().Get("period")
		if period == "" {
			http.Error(w, "period required", http.StatusBadRequest)
			return
		}
		subs, err := store.FindByUserAndPeriod(r.Context(), u.ID, period)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if subs == nil {
			subs = []submission.Submission{}
		}
		_ = json.NewEncoder(w).Encode(subs)
	}
}

func batchKey(rows []submission.Row) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Period
}
