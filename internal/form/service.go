package form

import (
	"context"
	"log"
	"time"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/submission"
)

// Service glues the catalog, the role filter and the submission store into
// the navigation and materialization operations the API exposes.
type Service struct {
	catalog  catalog.Store
	filter   *access.Filter
	subs     submission.Store
	resolver *Resolver
	now      func() time.Time
}

func NewService(cat catalog.Store, filter *access.Filter, subs submission.Store) *Service {
	return &Service{
		catalog:  cat,
		filter:   filter,
		subs:     subs,
		resolver: NewResolver(subs),
		now:      time.Now,
	}
}

// SetClock overrides wall-clock time; tests pin the reporting period with it.
func (s *Service) SetClock(fn func() time.Time) { s.now = fn }

// FormAt materializes the form at the requested position for the user. A
// reference that matches nothing falls back to the first accessible topic
// (Substituted=true); a role that can see nothing yields NoContent=true.
// companyID scopes submissions when company reporting is enabled, else "".
func (s *Service) FormAt(ctx context.Context, moduleRef, topicRef Ref, user identity.User, companyID string) (FormView, error) {
	allowedT := s.filter.AllowedTopics(ctx, user.Role)
	allowedQ := s.filter.AllowedQuestions(ctx, user.Role)

	mods := s.activeModules(ctx)
	topic, ok, substituted := s.resolvePosition(ctx, mods, moduleRef, topicRef, allowedT, allowedQ)
	if !ok {
		return FormView{NoContent: true}, nil
	}

	view, err := s.BuildTopicView(ctx, topic, user, allowedQ, companyID)
	if err != nil {
		return FormView{}, err
	}

	pos := Position{ModuleID: topic.ModuleID, TopicID: topic.ID}
	next := s.Next(ctx, pos, user.Role)
	prevNav := s.Previous(ctx, pos, user.Role)

	sameModule := true
	if substituted && moduleRef.ID != "" && moduleRef.ID != topic.ModuleID {
		sameModule = false
	}
	return FormView{
		TopicView:    view,
		HasNext:      next.OK,
		HasPrevious:  prevNav.OK,
		IsSameModule: sameModule,
		Substituted:  substituted,
	}, nil
}

// resolvePosition turns the dual-mode references into a concrete accessible
// topic. Reported values: (topic, found, substituted).
func (s *Service) resolvePosition(ctx context.Context, mods []catalog.Module, moduleRef, topicRef Ref,
	allowedT, allowedQ access.Set) (catalog.Topic, bool, bool) {

	if mod, ok := pickModule(mods, moduleRef); ok {
		topics := s.accessibleTopics(ctx, mod.ID, allowedT, allowedQ)
		if t, ok := pickTopic(topics, topicRef); ok {
			return t, true, false
		}
	}

	// Substitution: first accessible topic anywhere.
	for _, mod := range mods {
		topics := s.accessibleTopics(ctx, mod.ID, allowedT, allowedQ)
		if len(topics) > 0 {
			return topics[0], true, true
		}
	}
	return catalog.Topic{}, false, false
}

func pickModule(mods []catalog.Module, ref Ref) (catalog.Module, bool) {
	if ref.ID != "" {
		for _, m := range mods {
			if m.ID == ref.ID {
				return m, true
			}
		}
		return catalog.Module{}, false
	}
	if ref.hasIndex() && ref.Index <= len(mods) {
		return mods[ref.Index-1], true
	}
	if ref.IsZero() && len(mods) > 0 {
		return mods[0], true
	}
	return catalog.Module{}, false
}

func pickTopic(topics []catalog.Topic, ref Ref) (catalog.Topic, bool) {
	if ref.ID != "" {
		for _, t := range topics {
			if t.ID == ref.ID {
				return t, true
			}
		}
		return catalog.Topic{}, false
	}
	if ref.hasIndex() && ref.Index <= len(topics) {
		return topics[ref.Index-1], true
	}
	if ref.IsZero() && len(topics) > 0 {
		return topics[0], true
	}
	return catalog.Topic{}, false
}

// activeModules lists active modules in priority order, degrading to empty
// on lookup failure.
func (s *Service) activeModules(ctx context.Context) []catalog.Module {
	mods, err := s.catalog.ListModules(ctx)
	if err != nil {
		log.Printf("form: list modules: %v", err)
		return nil
	}
	out := mods[:0]
	for _, m := range mods {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// accessibleTopics returns the module's topics the role may land on: active,
// topic-granted, and holding at least one granted active question.
func (s *Service) accessibleTopics(ctx context.Context, moduleID string, allowedT, allowedQ access.Set) []catalog.Topic {
	topics, err := s.catalog.ListTopics(ctx, moduleID)
	if err != nil {
		log.Printf("form: list topics of %s: %v", moduleID, err)
		return nil
	}
	var out []catalog.Topic
	for _, t := range topics {
		if !t.Active || !allowedT.Has(t.ID) {
			continue
		}
		if len(s.visibleQuestions(ctx, t.ID, allowedQ)) == 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) visibleQuestions(ctx context.Context, topicID string, allowedQ access.Set) []catalog.Question {
	qs, err := s.catalog.ListQuestions(ctx, topicID)
	if err != nil {
		log.Printf("form: list questions of %s: %v", topicID, err)
		return nil
	}
	var out []catalog.Question
	for _, q := range qs {
		if q.Active && allowedQ.Has(q.ID) {
			out = append(out, q)
		}
	}
	return out
}
