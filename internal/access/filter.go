// Package access resolves what a role is allowed to see. Visibility is a
// whitelist: no grant row means the topic or question does not exist for
// that role.
package access

import (
	"context"
	"log"
)

// Set is a collection of granted IDs.
type Set map[string]struct{}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Empty() bool { return len(s) == 0 }

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// GrantStore looks up raw grant edges for a role.
type GrantStore interface {
	TopicGrants(ctx context.Context, roleID string) ([]string, error)
	QuestionGrants(ctx context.Context, roleID string) ([]string, error)
}

// Filter answers visibility queries. Lookup failures degrade to an empty
// set so callers render "no accessible content" instead of an error page.
type Filter struct {
	grants GrantStore
}

func NewFilter(g GrantStore) *Filter { return &Filter{grants: g} }

func (f *Filter) AllowedTopics(ctx context.Context, roleID string) Set {
	ids, err := f.grants.TopicGrants(ctx, roleID)
	if err != nil {
		log.Printf("access: topic grants for role %s: %v", roleID, err)
		return Set{}
	}
	return NewSet(ids...)
}

func (f *Filter) AllowedQuestions(ctx context.Context, roleID string) Set {
	ids, err := f.grants.QuestionGrants(ctx, roleID)
	if err != nil {
		log.Printf("access: question grants for role %s: %v", roleID, err)
		return Set{}
	}
	return NewSet(ids...)
}
