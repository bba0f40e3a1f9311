package form_test

import (
	"context"
	"testing"

	"github.com/opstat/opstat/internal/form"
)

func TestNextWithinModule(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	ctx := context.Background()

	nav := e.svc.Next(ctx, form.Position{ModuleID: "mod-a", TopicID: "topic-a1"}, "unit")
	if !nav.OK {
		t.Fatal("expected a successor")
	}
	if !nav.SameModule {
		t.Error("topic-a2 is in the same module")
	}
	if nav.Position.TopicID != "topic-a2" {
		t.Errorf("next = %s, want topic-a2", nav.Position.TopicID)
	}
}

func TestNextCrossesModuleBoundary(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	ctx := context.Background()

	nav := e.svc.Next(ctx, form.Position{ModuleID: "mod-a", TopicID: "topic-a2"}, "unit")
	if !nav.OK {
		t.Fatal("expected a successor")
	}
	if nav.SameModule {
		t.Error("crossing into mod-b must clear SameModule")
	}
	if nav.Position.ModuleID != "mod-b" || nav.Position.TopicID != "topic-b1" {
		t.Errorf("next = %+v, want mod-b/topic-b1", nav.Position)
	}
}

func TestNextSkipsInaccessibleModule(t *testing.T) {
	e := newEnv()
	// Everything except mod-b's topic: the whole module must be skipped.
	for _, id := range []string{"topic-a1", "topic-a2", "topic-c1"} {
		e.grants.GrantTopic("unit", id)
	}
	for _, id := range []string{"qa1", "qa2", "qa3", "qa4", "qb1", "qc1"} {
		e.grants.GrantQuestion("unit", id)
	}
	ctx := context.Background()

	nav := e.svc.Next(ctx, form.Position{ModuleID: "mod-a", TopicID: "topic-a2"}, "unit")
	if !nav.OK {
		t.Fatal("expected a successor")
	}
	if nav.Position.ModuleID != "mod-c" || nav.Position.TopicID != "topic-c1" {
		t.Errorf("next = %+v, want mod-c/topic-c1 (mod-b skipped)", nav.Position)
	}
	if nav.SameModule {
		t.Error("landing in mod-c must clear SameModule")
	}
}

func TestNextSkipsTopicWithNoVisibleQuestions(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	// topic-a2 is granted but its only question is not: it must be invisible
	// to navigation.
	e.grants.RevokeQuestion("unit", "qb1")
	ctx := context.Background()

	nav := e.svc.Next(ctx, form.Position{ModuleID: "mod-a", TopicID: "topic-a1"}, "unit")
	if !nav.OK {
		t.Fatal("expected a successor")
	}
	if nav.Position.ModuleID != "mod-b" || nav.Position.TopicID != "topic-b1" {
		t.Errorf("next = %+v, want mod-b/topic-b1", nav.Position)
	}
}

func TestNextTerminal(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")

	nav := e.svc.Next(context.Background(), form.Position{ModuleID: "mod-c", TopicID: "topic-c1"}, "unit")
	if nav.OK {
		t.Errorf("topic-c1 is the last accessible topic, got %+v", nav)
	}
}

func TestPreviousWithinModule(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")

	nav := e.svc.Previous(context.Background(), form.Position{ModuleID: "mod-a", TopicID: "topic-a2"}, "unit")
	if !nav.OK || !nav.SameModule || nav.Position.TopicID != "topic-a1" {
		t.Errorf("previous = %+v, want same-module topic-a1", nav)
	}
}

func TestPreviousCrossesToLastTopicOfEarlierModule(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")

	nav := e.svc.Previous(context.Background(), form.Position{ModuleID: "mod-b", TopicID: "topic-b1"}, "unit")
	if !nav.OK {
		t.Fatal("expected a predecessor")
	}
	if nav.SameModule {
		t.Error("crossing back into mod-a must clear SameModule")
	}
	if nav.Position.ModuleID != "mod-a" || nav.Position.TopicID != "topic-a2" {
		t.Errorf("previous = %+v, want mod-a/topic-a2 (last of mod-a)", nav.Position)
	}
}

func TestPreviousTerminal(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")

	nav := e.svc.Previous(context.Background(), form.Position{ModuleID: "mod-a", TopicID: "topic-a1"}, "unit")
	if nav.OK {
		t.Errorf("topic-a1 is the first accessible topic, got %+v", nav)
	}
}

func TestNavigationWithNoGrants(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	if nav := e.svc.Next(ctx, form.Position{ModuleID: "mod-a", TopicID: "topic-a1"}, "unit"); nav.OK {
		t.Errorf("ungranted role must have no next, got %+v", nav)
	}
	if nav := e.svc.Previous(ctx, form.Position{ModuleID: "mod-c", TopicID: "topic-c1"}, "unit"); nav.OK {
		t.Errorf("ungranted role must have no previous, got %+v", nav)
	}

	view, err := e.svc.FormAt(ctx, form.Ref{}, form.Ref{}, e.user, "")
	if err != nil {
		t.Fatal(err)
	}
	if !view.NoContent {
		t.Error("ungranted role must get NoContent")
	}
}

func TestFormAtResolvesByPriorityIndex(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	ctx := context.Background()

	view, err := e.svc.FormAt(ctx, form.ByPriority(1), form.ByPriority(2), e.user, "")
	if err != nil {
		t.Fatal(err)
	}
	if view.TopicID != "topic-a2" {
		t.Errorf("landed on %s, want topic-a2", view.TopicID)
	}
	if view.Substituted {
		t.Error("exact index match must not be flagged substituted")
	}
	if !view.HasNext || !view.HasPrevious {
		t.Errorf("topic-a2 has neighbors both ways, got next=%v prev=%v", view.HasNext, view.HasPrevious)
	}
}

func TestFormAtSubstitutesInvalidPosition(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	ctx := context.Background()

	view, err := e.svc.FormAt(ctx, form.ByID("mod-gone"), form.ByID("topic-gone"), e.user, "")
	if err != nil {
		t.Fatal(err)
	}
	if !view.Substituted {
		t.Error("dangling reference must substitute")
	}
	if view.TopicID != "topic-a1" {
		t.Errorf("substituted to %s, want the first accessible topic topic-a1", view.TopicID)
	}
	if view.HasPrevious {
		t.Error("first topic has no predecessor")
	}
}

func TestFormAtIDWinsOverIndex(t *testing.T) {
	e := newEnv()
	e.grantAll("unit")
	ctx := context.Background()

	// Index points at mod-a but the ID names mod-b: the ID must win.
	view, err := e.svc.FormAt(ctx, form.Ref{ID: "mod-b", Index: 1}, form.Ref{}, e.user, "")
	if err != nil {
		t.Fatal(err)
	}
	if view.ModuleID != "mod-b" || view.TopicID != "topic-b1" {
		t.Errorf("landed on %s/%s, want mod-b/topic-b1", view.ModuleID, view.TopicID)
	}
}
