// Package submission stores the answers units enter for a reporting period.
// An answer is addressed by its Key; re-saving the same key overwrites, it
// never creates a second row.
package submission

import "context"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

// Key identifies one answer slot. SubTopicID and CompanyID are "" when the
// question is not split by sub-topic or company; the empty string takes part
// in the uniqueness constraint so the key shape is identical on every store.
type Key struct {
	UserID     string `json:"user_id"`
	QuestionID string `json:"question_id"`
	Period     string `json:"period"`
	SubTopicID string `json:"sub_topic_id,omitempty"`
	CompanyID  string `json:"company_id,omitempty"`
}

// WithPeriod returns a copy of the key addressing the same slot in another
// reporting period.
func (k Key) WithPeriod(p string) Key {
	k.Period = p
	return k
}

type Submission struct {
	ID        string `json:"id"`
	Key       Key    `json:"key"`
	Value     string `json:"value"`
	Status    Status `json:"status"`
	UpdatedAt int64  `json:"updated_at"`
}

// Store persists answers. Find reports found=false rather than an error when
// no row matches, so the resolver can fall through its default chain without
// error plumbing.
type Store interface {
	Upsert(ctx context.Context, key Key, value string, status Status) (Submission, error)
	Find(ctx context.Context, key Key) (Submission, bool, error)
	FindByUserAndPeriod(ctx context.Context, userID, period string) ([]Submission, error)
}
