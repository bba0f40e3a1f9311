package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/identity"
)

// seedMemory mirrors db.SeedDemo for the in-process stores used in offline
// runs: one flat topic, one matrix topic, grants for the unit role and a
// demo login (demo/demo).
func seedMemory(ctx context.Context, cat *catalog.MemoryStore, grants *access.MemoryGrantStore, users *identity.MemoryStore) {
	cat.PutModule(catalog.Module{ID: "mod-crime", Name: "Crime Statistics", Priority: 1, Active: true})
	cat.PutModule(catalog.Module{ID: "mod-admin", Name: "Administration", Priority: 2, Active: true})

	cat.PutTopic(catalog.Topic{
		ID: "top-firs", ModuleID: "mod-crime", Name: "FIRs Registered",
		Layout: catalog.LayoutNormal, Priority: 1,
		ShowPrevious: true, ShowCumulative: true,
		FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})
	cat.PutTopic(catalog.Topic{
		ID: "top-strength", ModuleID: "mod-admin", Name: "Sanctioned Strength",
		Layout: catalog.LayoutQuesOverSubTopic, Priority: 1,
		FiscalStartMonth: time.April, FiscalEndMonth: time.March, Active: true,
	})
	cat.PutSubTopic(catalog.SubTopic{ID: "st-off", TopicID: "top-strength", Name: "Officers", Priority: 1, Active: true})
	cat.PutSubTopic(catalog.SubTopic{ID: "st-men", TopicID: "top-strength", Name: "Other Ranks", Priority: 2, Active: true})

	cat.PutQuestion(catalog.Question{ID: "q-fir-total", TopicID: "top-firs", Text: "FIRs registered this month",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})
	cat.PutQuestion(catalog.Question{ID: "q-fir-pending", TopicID: "top-firs", Text: "FIRs pending from previous month",
		Type: catalog.TypeNumber, Priority: 2, Strategy: catalog.StrategyPrevious, Active: true})
	cat.PutQuestion(catalog.Question{ID: "q-ps-count", TopicID: "top-firs", Text: "Police stations in unit",
		Type: catalog.TypeNumber, Priority: 3, Strategy: catalog.StrategyAttrPS, Active: true})
	cat.PutQuestion(catalog.Question{ID: "q-sanctioned", TopicID: "top-strength", Text: "Sanctioned posts",
		Type: catalog.TypeNumber, Priority: 1, Strategy: catalog.StrategyNone, Active: true})
	cat.PutQuestion(catalog.Question{ID: "q-posted", TopicID: "top-strength", Text: "Posted strength",
		Type: catalog.TypeNumber, Priority: 2, Strategy: catalog.StrategyNone, Active: true})

	grants.GrantTopic("unit", "top-firs")
	grants.GrantTopic("unit", "top-strength")
	for _, q := range []string{"q-fir-total", "q-fir-pending", "q-ps-count", "q-sanctioned", "q-posted"} {
		grants.GrantQuestion("unit", q)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), 12)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	_ = users.UpsertUser(ctx, identity.User{
		ID: "u-demo", Username: "demo", PassHash: string(hash), Role: "unit", UnitID: "bn-7",
		PSCount: 12, SubdivisionCount: 3, CircleCount: 4, PSOPCount: 2,
	})
}
