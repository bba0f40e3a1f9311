package form

import (
	"strings"

	"github.com/opstat/opstat/internal/catalog"
)

// TargetRef names a cell some formula writes into. SubTopicID "" targets the
// question across every sub-topic.
type TargetRef struct {
	QuestionID string
	SubTopicID string
}

// FormulaTargets extracts destination references from a formula string. The
// expression body is opaque to this engine; only the part after "=>" is
// read, as comma-separated "questionID" or "questionID@subTopicID" tokens.
func FormulaTargets(formula string) []TargetRef {
	_, after, found := strings.Cut(formula, "=>")
	if !found {
		return nil
	}
	var out []TargetRef
	for _, tok := range strings.Split(after, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		qid, stid, _ := strings.Cut(tok, "@")
		out = append(out, TargetRef{QuestionID: strings.TrimSpace(qid), SubTopicID: strings.TrimSpace(stid)})
	}
	return out
}

// destinationSet collects every cell that is written by another question's
// formula or derived default strategy. Cells in this set are locked in the
// matrix layouts even when their own question looks editable.
func destinationSet(questions []catalog.Question) map[TargetRef]struct{} {
	dest := map[TargetRef]struct{}{}
	for _, q := range questions {
		for _, t := range FormulaTargets(q.Formula) {
			dest[t] = struct{}{}
		}
		if q.Strategy == catalog.StrategyReferenced && q.RefQuestionID != "" {
			dest[TargetRef{QuestionID: q.RefQuestionID, SubTopicID: q.SubTopicID}] = struct{}{}
		}
	}
	return dest
}

func isDestination(dest map[TargetRef]struct{}, questionID, subTopicID string) bool {
	if _, ok := dest[TargetRef{QuestionID: questionID, SubTopicID: subTopicID}]; ok {
		return true
	}
	_, ok := dest[TargetRef{QuestionID: questionID}]
	return ok
}
