// Package form is the questionnaire engine: it decides which topic a user
// lands on, what every cell of that topic displays, and whether the cell can
// be edited. Catalog and grant lookups that fail are treated as empty so a
// broken lookup renders as "no accessible content" rather than an error.
package form

import (
	"github.com/opstat/opstat/internal/catalog"
)

// Row is one line of a NORMAL-layout topic.
type Row struct {
	QuestionID string            `json:"question_id"`
	Text       string            `json:"text"`
	Type       catalog.ValueType `json:"value_type"`
	SubTopicID string            `json:"sub_topic_id,omitempty"`
	// Seq restarts at 1 whenever the sub-topic changes, so each sub-topic
	// block is numbered as its own contiguous sequence.
	Seq      int    `json:"seq"`
	Value    string `json:"value"`
	Editable bool   `json:"editable"`

	Previous   string  `json:"previous,omitempty"`
	Cumulative float64 `json:"cumulative,omitempty"`
}

// Cell is one (question, sub-topic) slot of a matrix-layout topic.
type Cell struct {
	SubTopicID string `json:"sub_topic_id"`
	Value      string `json:"value"`
	Editable   bool   `json:"editable"`
	// IsNew distinguishes "never entered" from "entered as zero"; only the
	// question-over-subtopic layout reports it.
	IsNew bool `json:"is_new,omitempty"`
}

type MatrixRow struct {
	QuestionID string            `json:"question_id"`
	Text       string            `json:"text"`
	Type       catalog.ValueType `json:"value_type"`
	Seq        int               `json:"seq"`
	Cells      []Cell            `json:"cells"`
}

// TopicView is the fully materialized render model for one topic.
type TopicView struct {
	ModuleID       string             `json:"module_id"`
	TopicID        string             `json:"topic_id"`
	TopicName      string             `json:"topic_name"`
	Layout         catalog.FormLayout `json:"form_layout"`
	Period         string             `json:"period"`
	PreviousPeriod string             `json:"previous_period"`

	// Empty means no question of this topic is visible to the role; an empty
	// topic is never a valid navigation destination.
	Empty bool `json:"empty"`

	ShowPrevious   bool `json:"show_previous"`
	ShowCumulative bool `json:"show_cumulative"`

	Rows []Row `json:"rows,omitempty"`

	SubTopics  []catalog.SubTopic `json:"sub_topics,omitempty"`
	MatrixRows []MatrixRow        `json:"matrix_rows,omitempty"`

	Total float64 `json:"total"`
}

// FormView is a TopicView plus the navigation flags the request layer
// returns alongside it.
type FormView struct {
	TopicView

	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
	IsSameModule bool `json:"is_same_module"`

	// Substituted is set when the requested position matched nothing and the
	// engine fell back to the first accessible topic.
	Substituted bool `json:"substituted,omitempty"`
	// NoContent is set when the role can see nothing at all.
	NoContent bool `json:"no_content,omitempty"`
}
