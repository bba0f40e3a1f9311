package form_test

import (
	"context"
	"testing"

	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/form"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/submission"
)

var testUser = identity.User{ID: "u1", Role: "unit", PSCount: 12, SubdivisionCount: 3, CircleCount: 4, PSOPCount: 2}

func numberQuestion(id string, strategy catalog.DefaultStrategy) catalog.Question {
	return catalog.Question{ID: id, TopicID: "t", Type: catalog.TypeNumber, Strategy: strategy, Active: true}
}

func TestResolveCurrentSubmissionWins(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q1", catalog.StrategyPrevious)

	key := submission.Key{UserID: "u1", QuestionID: "q1", Period: "SEP 2025"}
	if _, err := subs.Upsert(ctx, key, "7", submission.StatusInProgress); err != nil {
		t.Fatal(err)
	}
	// A previous-period value exists too but must lose to rule 1.
	if _, err := subs.Upsert(ctx, key.WithPeriod("AUG 2025"), "99", submission.StatusSubmitted); err != nil {
		t.Fatal(err)
	}

	res, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "7" {
		t.Errorf("value = %q, want 7", res.Value)
	}
	if !res.Editable {
		t.Error("in-progress submission should stay editable")
	}
	if !res.Stored {
		t.Error("Stored should be true for a current-period hit")
	}
}

func TestResolveSubmittedIsLocked(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q1", catalog.StrategyNone)

	key := submission.Key{UserID: "u1", QuestionID: "q1", Period: "SEP 2025"}
	if _, err := subs.Upsert(ctx, key, "7", submission.StatusSubmitted); err != nil {
		t.Fatal(err)
	}
	res, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Editable {
		t.Error("submitted value must not be editable")
	}
}

func TestResolvePreviousStrategy(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q1", catalog.StrategyPrevious)

	prevKey := submission.Key{UserID: "u1", QuestionID: "q1", Period: "AUG 2025"}
	if _, err := subs.Upsert(ctx, prevKey, "42", submission.StatusSubmitted); err != nil {
		t.Fatal(err)
	}
	res, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "42" {
		t.Errorf("value = %q, want 42", res.Value)
	}
	if !res.Editable {
		t.Error("a previous-strategy default must remain editable")
	}
	if res.Stored {
		t.Error("a default is not a stored current-period value")
	}
}

func TestResolvePreviousStrategyZeroWhenAbsent(t *testing.T) {
	r := form.NewResolver(submission.NewMemoryStore())
	q := numberQuestion("q1", catalog.StrategyPrevious)
	res, err := r.Resolve(context.Background(), q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "0" {
		t.Errorf("value = %q, want type zero 0", res.Value)
	}
}

func TestResolveReferencedStrategy(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q2", catalog.StrategyReferenced)
	q.RefQuestionID = "q1"

	refKey := submission.Key{UserID: "u1", QuestionID: "q1", Period: "AUG 2025"}
	if _, err := subs.Upsert(ctx, refKey, "15", submission.StatusSubmitted); err != nil {
		t.Fatal(err)
	}
	res, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "15" {
		t.Errorf("value = %q, want 15 (referenced question's previous value)", res.Value)
	}
	if res.Editable {
		t.Error("a referenced question is computed, not entered")
	}
}

func TestResolveUserAttribute(t *testing.T) {
	r := form.NewResolver(submission.NewMemoryStore())
	cases := []struct {
		strategy catalog.DefaultStrategy
		want     string
	}{
		{catalog.StrategyAttrPS, "12"},
		{catalog.StrategyAttrSub, "3"},
		{catalog.StrategyAttrCircle, "4"},
		{catalog.StrategyAttrPSOP, "2"},
	}
	for _, c := range cases {
		res, err := r.Resolve(context.Background(), numberQuestion("q1", c.strategy), testUser, "SEP 2025", "AUG 2025", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if res.Value != c.want {
			t.Errorf("%s: value = %q, want %q", c.strategy, res.Value, c.want)
		}
		if res.Editable {
			t.Errorf("%s: attribute-backed value must not be editable", c.strategy)
		}
	}
}

func TestResolveFormulaNeverEditable(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q1", catalog.StrategyNone)
	q.Formula = "q2+q3"

	key := submission.Key{UserID: "u1", QuestionID: "q1", Period: "SEP 2025"}
	if _, err := subs.Upsert(ctx, key, "30", submission.StatusInProgress); err != nil {
		t.Fatal(err)
	}
	res, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "30" {
		t.Errorf("value = %q, want 30", res.Value)
	}
	if res.Editable {
		t.Error("formula-derived question must never be editable")
	}
}

func TestResolveDeterministic(t *testing.T) {
	ctx := context.Background()
	subs := submission.NewMemoryStore()
	r := form.NewResolver(subs)
	q := numberQuestion("q1", catalog.StrategyPrevious)
	prevKey := submission.Key{UserID: "u1", QuestionID: "q1", Period: "AUG 2025"}
	if _, err := subs.Upsert(ctx, prevKey, "42", submission.StatusSubmitted); err != nil {
		t.Fatal(err)
	}

	first, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(ctx, q, testUser, "SEP 2025", "AUG 2025", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Resolve not deterministic: %+v vs %+v", first, second)
	}
}

func TestNumericContribution(t *testing.T) {
	cases := []struct {
		typ   catalog.ValueType
		value string
		want  float64
	}{
		{catalog.TypeNumber, "42", 42},
		{catalog.TypeNumber, "4.5", 4.5},
		{catalog.TypeNumber, "42 (approx)", 42},
		{catalog.TypeNumber, "garbage", 0},
		{catalog.TypeNumber, "", 0},
		{catalog.TypeYesNo, "Yes", 0},
		{catalog.TypeYesNo, "no", 0},
		{catalog.TypeText, "42", 0},
		{catalog.TypeDate, "2025-09-01", 0},
	}
	for _, c := range cases {
		if got := form.NumericContribution(c.typ, c.value); got != c.want {
			t.Errorf("NumericContribution(%s, %q) = %v, want %v", c.typ, c.value, got, c.want)
		}
	}
}
