package form

import (
	"context"

	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/submission"
)

// Resolution is the outcome of the value fallback chain for one cell.
type Resolution struct {
	Value    string
	Editable bool
	// Stored is true when a current-period submission backs the value
	// (rule 1); everything else is a default that has not been saved yet.
	Stored bool
	Status submission.Status
}

// Resolver applies the display-value fallback chain. It is deterministic:
// the same question config, stored submissions, user attributes and periods
// always produce the same Resolution.
type Resolver struct {
	subs submission.Store
}

func NewResolver(subs submission.Store) *Resolver { return &Resolver{subs: subs} }

// Resolve picks the value shown for q, first match wins:
//
//  1. the current-period submission, non-editable once submitted;
//  2. strategy previous: the previous-period submission, else the type zero;
//  3. strategy referenced: the referenced question's previous-period
//     submission, else the type zero;
//  4. strategy attr_*: the matching numeric attribute of the user;
//  5. otherwise the type zero value.
//
// Independently of which rule fired, a computed question (formula or derived
// strategy) is never editable.
func (r *Resolver) Resolve(ctx context.Context, q catalog.Question, user identity.User,
	cur, prev, subTopicID, companyID string) (Resolution, error) {

	res := Resolution{Editable: !q.Computed()}

	key := submission.Key{
		UserID:     user.ID,
		QuestionID: q.ID,
		Period:     cur,
		SubTopicID: subTopicID,
		CompanyID:  companyID,
	}
	sub, ok, err := r.subs.Find(ctx, key)
	if err != nil {
		return Resolution{}, err
	}
	if ok {
		res.Value = sub.Value
		res.Stored = true
		res.Status = sub.Status
		if sub.Status == submission.StatusSubmitted {
			res.Editable = false
		}
		return res, nil
	}

	switch q.Strategy {
	case catalog.StrategyPrevious:
		res.Value, err = r.storedValue(ctx, key.WithPeriod(prev), q.Type)
	case catalog.StrategyReferenced:
		refKey := key.WithPeriod(prev)
		refKey.QuestionID = q.RefQuestionID
		res.Value, err = r.storedValue(ctx, refKey, q.Type)
	case catalog.StrategyAttrPS, catalog.StrategyAttrSub,
		catalog.StrategyAttrCircle, catalog.StrategyAttrPSOP:
		res.Value, _ = user.Attr(q.Strategy)
	default:
		res.Value = q.Type.ZeroValue()
	}
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

func (r *Resolver) storedValue(ctx context.Context, key submission.Key, t catalog.ValueType) (string, error) {
	sub, ok, err := r.subs.Find(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return t.ZeroValue(), nil
	}
	return sub.Value, nil
}
