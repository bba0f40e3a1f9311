package catalog

import "context"

// Store is read-only access to the questionnaire catalog. All list methods
// return rows in ascending priority order; callers are expected to respect
// the Active flag themselves so that admin surfaces can still see inactive
// rows.
type Store interface {
	ListModules(ctx context.Context) ([]Module, error)
	GetModule(ctx context.Context, id string) (Module, error)
	ListTopics(ctx context.Context, moduleID string) ([]Topic, error)
	GetTopic(ctx context.Context, id string) (Topic, error)
	ListSubTopics(ctx context.Context, topicID string) ([]SubTopic, error)
	ListQuestions(ctx context.Context, topicID string) ([]Question, error)
}
