package catalog

import "time"

// FormLayout selects how a topic's questions are rendered.
type FormLayout string

const (
	LayoutNormal           FormLayout = "normal"
	LayoutSubTopicOverQues FormLayout = "subtopic_over_question"
	LayoutQuesOverSubTopic FormLayout = "question_over_subtopic"
)

// ValueType is the scalar type a question's answer is interpreted as.
type ValueType string

const (
	TypeText   ValueType = "text"
	TypeNumber ValueType = "number"
	TypeDate   ValueType = "date"
	TypeYesNo  ValueType = "yesno"
)

// DefaultStrategy pre-populates a question when no current-period answer
// exists. The attr_* strategies read a numeric attribute off the user record.
type DefaultStrategy string

const (
	StrategyNone       DefaultStrategy = "none"
	StrategyPrevious   DefaultStrategy = "previous"
	StrategyReferenced DefaultStrategy = "referenced"
	StrategyAttrPS     DefaultStrategy = "attr_ps"
	StrategyAttrSub    DefaultStrategy = "attr_sub"
	StrategyAttrCircle DefaultStrategy = "attr_circle"
	StrategyAttrPSOP   DefaultStrategy = "attr_psop"
)

type Module struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

type Topic struct {
	ID               string     `json:"id"`
	ModuleID         string     `json:"module_id"`
	Name             string     `json:"name"`
	Layout           FormLayout `json:"form_layout"`
	Priority         int        `json:"priority"`
	ShowPrevious     bool       `json:"show_previous"`
	ShowCumulative   bool       `json:"show_cumulative"`
	FiscalStartMonth time.Month `json:"fiscal_start_month"`
	FiscalEndMonth   time.Month `json:"fiscal_end_month"`
	Active           bool       `json:"active"`
}

type SubTopic struct {
	ID       string `json:"id"`
	TopicID  string `json:"topic_id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

type Question struct {
	ID         string          `json:"id"`
	TopicID    string          `json:"topic_id"`
	SubTopicID string          `json:"sub_topic_id,omitempty"`
	Text       string          `json:"text"`
	Type       ValueType       `json:"value_type"`
	Priority   int             `json:"priority"`
	Strategy   DefaultStrategy `json:"default_strategy"`
	// RefQuestionID is consulted when Strategy is StrategyReferenced.
	RefQuestionID string `json:"referenced_question_id,omitempty"`
	// Formula marks the question as derived; a derived question is never
	// hand-entered. Its value holds target references, see form.FormulaTargets.
	Formula string `json:"formula,omitempty"`
	Active  bool   `json:"active"`
}

// Computed reports whether the question's value is produced by the system
// rather than typed in by a unit.
func (q Question) Computed() bool {
	switch {
	case q.Formula != "":
		return true
	case q.Strategy == StrategyReferenced && q.RefQuestionID != "":
		return true
	case q.Strategy == StrategyAttrPS, q.Strategy == StrategyAttrSub,
		q.Strategy == StrategyAttrCircle, q.Strategy == StrategyAttrPSOP:
		return true
	}
	return false
}

// ZeroValue is the display value used when no submission backs a question.
func (t ValueType) ZeroValue() string {
	switch t {
	case TypeNumber:
		return "0"
	case TypeYesNo:
		return "No"
	default:
		return ""
	}
}
