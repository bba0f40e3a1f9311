package submission

import "context"

// Row is one answer inside a batch save. Validation tags are enforced by the
// API layer before SaveBatch runs.
type Row struct {
	QuestionID string `json:"question_id" validate:"required"`
	Period     string `json:"period" validate:"required"`
	SubTopicID string `json:"sub_topic_id"`
	CompanyID  string `json:"company_id"`
	Value      string `json:"value"`
	Submit     bool   `json:"submit"`
}

type Failure struct {
	Key   Key    `json:"key"`
	Cause string `json:"cause"`
}

type BatchResult struct {
	Saved  []Submission `json:"saved"`
	Failed []Failure    `json:"failed,omitempty"`
}

// SaveBatch upserts every row for the given user. Rows fail independently:
// a bad row is reported with its key while the rest of the batch commits.
func SaveBatch(ctx context.Context, store Store, userID string, rows []Row) BatchResult {
	var res BatchResult
	for _, r := range rows {
		key := Key{
			UserID:     userID,
			QuestionID: r.QuestionID,
			Period:     r.Period,
			SubTopicID: r.SubTopicID,
			CompanyID:  r.CompanyID,
		}
		status := StatusInProgress
		if r.Submit {
			status = StatusSubmitted
		}
		sub, err := store.Upsert(ctx, key, r.Value, status)
		if err != nil {
			res.Failed = append(res.Failed, Failure{Key: key, Cause: err.Error()})
			continue
		}
		res.Saved = append(res.Saved, sub)
	}
	return res
}
