package form_test

import (
	"time"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/form"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/submission"
)

// Clock pinned to mid-October 2025: the open reporting period is SEP 2025
// and the one before it AUG 2025.
const (
	curPeriod  = "SEP 2025"
	prevPeriod = "AUG 2025"
)

func testClock() time.Time {
	return time.Date(2025, time.October, 15, 9, 0, 0, 0, time.UTC)
}

type env struct {
	cat    *catalog.MemoryStore
	grants *access.MemoryGrantStore
	subs   *submission.MemoryStore
	svc    *form.Service
	user   identity.User
}

// newEnv builds a three-module catalog:
//
//	mod-a: topic-a1 (normal, prev+cumulative), topic-a2 (normal)
//	mod-b: topic-b1 (question-over-subtopic matrix, st1/st2)
//	mod-c: topic-c1 (normal)
//
// Nothing is granted yet; tests call grantAll or grant selectively.
func newEnv() *env {
	cat := catalog.NewMemoryStore()

	cat.PutModule(catalog.Module{ID: "mod-a", Name: "Crime", Priority: 1, Active: true})
	cat.PutModule(catalog.Module{ID: "mod-b", Name: "Strength", Priority: 2, Active: true})
	cat.PutModule(catalog.Module{ID: "mod-c", Name: "Welfare", Priority: 3, Active: true})

	cat.PutTopic(catalog.Topic{
		ID: "topic-a1", ModuleID: "mod-a", Name: "FIRs", Layout: catalog.LayoutNormal,
		Priority: 1, ShowPrevious: true, ShowCumulative: true,
		FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})
	cat.PutTopic(catalog.Topic{
		ID: "topic-a2", ModuleID: "mod-a", Name: "Arrests", Layout: catalog.LayoutNormal,
		Priority: 2, FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})
	cat.PutTopic(catalog.Topic{
		ID: "topic-b1", ModuleID: "mod-b", Name: "Strength", Layout: catalog.LayoutQuesOverSubTopic,
		Priority: 1, FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})
	cat.PutTopic(catalog.Topic{
		ID: "topic-c1", ModuleID: "mod-c", Name: "Housing", Layout: catalog.LayoutNormal,
		Priority: 1, FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})

	cat.PutSubTopic(catalog.SubTopic{ID: "st1", TopicID: "topic-b1", Name: "Officers", Priority: 1, Active: true})
	cat.PutSubTopic(catalog.SubTopic{ID: "st2", TopicID: "topic-b1", Name: "Other Ranks", Priority: 2, Active: true})

	// topic-a1: two ungrouped questions then two under group g1.
	cat.PutQuestion(catalog.Question{ID: "qa1", TopicID: "topic-a1", Text: "FIRs registered",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})
	cat.PutQuestion(catalog.Question{ID: "qa2", TopicID: "topic-a1", Text: "FIRs pending",
		Type: catalog.TypeNumber, Priority: 2, Strategy: catalog.StrategyPrevious, Active: true})
	cat.PutQuestion(catalog.Question{ID: "qa3", TopicID: "topic-a1", SubTopicID: "g1", Text: "Police stations",
		Type: catalog.TypeNumber, Priority: 3, Strategy: catalog.StrategyAttrPS, Active: true})
	cat.PutQuestion(catalog.Question{ID: "qa4", TopicID: "topic-a1", SubTopicID: "g1", Text: "Remarks",
		Type: catalog.TypeText, Priority: 4, Strategy: catalog.StrategyNone, Active: true})

	cat.PutQuestion(catalog.Question{ID: "qb1", TopicID: "topic-a2", Text: "Arrests made",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})

	cat.PutQuestion(catalog.Question{ID: "qm1", TopicID: "topic-b1", Text: "Sanctioned posts",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})
	cat.PutQuestion(catalog.Question{ID: "qm2", TopicID: "topic-b1", Text: "Vacancies",
		Type: catalog.TypeNumber, Priority: 2, Strategy: catalog.StrategyNone,
		Formula: "qm1-posted => qm1@st2", Active: true})

	cat.PutQuestion(catalog.Question{ID: "qc1", TopicID: "topic-c1", Text: "Quarters allotted",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})

	grants := access.NewMemoryGrantStore()
	subs := submission.NewMemoryStore()
	svc := form.NewService(cat, access.NewFilter(grants), subs)
	svc.SetClock(testClock)

	return &env{
		cat:    cat,
		grants: grants,
		subs:   subs,
		svc:    svc,
		user: identity.User{
			ID: "u1", Username: "bn7", Role: "unit", UnitID: "bn-7",
			PSCount: 12, SubdivisionCount: 3, CircleCount: 4, PSOPCount: 2,
		},
	}
}

var allTopics = []string{"topic-a1", "topic-a2", "topic-b1", "topic-c1"}
var allQuestions = []string{"qa1", "qa2", "qa3", "qa4", "qb1", "qm1", "qm2", "qc1"}

func (e *env) grantAll(role string) {
	for _, t := range allTopics {
		e.grants.GrantTopic(role, t)
	}
	for _, q := range allQuestions {
		e.grants.GrantQuestion(role, q)
	}
}
