package form

import (
	"context"

	"github.com/opstat/opstat/internal/catalog"
)

// Next finds the topic after pos for the role. It first looks for a later
// accessible topic inside the same module, then for the first topic of the
// nearest later module that has any accessible topic. Modules with nothing
// accessible are skipped transparently; OK=false means pos is terminal.
func (s *Service) Next(ctx context.Context, pos Position, roleID string) NavResult {
	allowedT := s.filter.AllowedTopics(ctx, roleID)
	allowedQ := s.filter.AllowedQuestions(ctx, roleID)
	mods := s.activeModules(ctx)

	idx := moduleIndex(mods, pos.ModuleID)
	if idx >= 0 {
		topics := s.accessibleTopics(ctx, pos.ModuleID, allowedT, allowedQ)
		if i := topicIndex(topics, pos.TopicID); i >= 0 && i+1 < len(topics) {
			return NavResult{
				Position:   Position{ModuleID: pos.ModuleID, TopicID: topics[i+1].ID},
				SameModule: true,
				OK:         true,
			}
		}
	}
	for _, mod := range mods[idx+1:] {
		topics := s.accessibleTopics(ctx, mod.ID, allowedT, allowedQ)
		if len(topics) > 0 {
			return NavResult{
				Position: Position{ModuleID: mod.ID, TopicID: topics[0].ID},
				OK:       true,
			}
		}
	}
	return NavResult{}
}

// Previous is the mirror of Next: the preceding accessible topic in the same
// module, else the last accessible topic of the nearest earlier module.
func (s *Service) Previous(ctx context.Context, pos Position, roleID string) NavResult {
	allowedT := s.filter.AllowedTopics(ctx, roleID)
	allowedQ := s.filter.AllowedQuestions(ctx, roleID)
	mods := s.activeModules(ctx)

	idx := moduleIndex(mods, pos.ModuleID)
	if idx >= 0 {
		topics := s.accessibleTopics(ctx, pos.ModuleID, allowedT, allowedQ)
		if i := topicIndex(topics, pos.TopicID); i > 0 {
			return NavResult{
				Position:   Position{ModuleID: pos.ModuleID, TopicID: topics[i-1].ID},
				SameModule: true,
				OK:         true,
			}
		}
	}
	if idx < 0 {
		idx = len(mods)
	}
	for i := idx - 1; i >= 0; i-- {
		topics := s.accessibleTopics(ctx, mods[i].ID, allowedT, allowedQ)
		if len(topics) > 0 {
			return NavResult{
				Position: Position{ModuleID: mods[i].ID, TopicID: topics[len(topics)-1].ID},
				OK:       true,
			}
		}
	}
	return NavResult{}
}

func moduleIndex(mods []catalog.Module, id string) int {
	for i, m := range mods {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func topicIndex(topics []catalog.Topic, id string) int {
	for i, t := range topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}
