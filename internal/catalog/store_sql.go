package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by the Get* methods when no row matches.
var ErrNotFound = errors.New("catalog: not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListModules(ctx context.Context) ([]Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,priority,active FROM modules ORDER BY priority ASC`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	var out []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Priority, &m.Active); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetModule(ctx context.Context, id string) (Module, error) {
	var m Module
	err := s.db.QueryRowContext(ctx,
		`SELECT id,name,priority,active FROM modules WHERE id=$1`, id).
		Scan(&m.ID, &m.Name, &m.Priority, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Module{}, ErrNotFound
	}
	return m, err
}

func (s *SQLStore) ListTopics(ctx context.Context, moduleID string) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,module_id,name,form_layout,priority,show_previous,show_cumulative,
		        fiscal_start_month,fiscal_end_month,active
		 FROM topics WHERE module_id=$1 ORDER BY priority ASC`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()
	var out []Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetTopic(ctx context.Context, id string) (Topic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,module_id,name,form_layout,priority,show_previous,show_cumulative,
		        fiscal_start_month,fiscal_end_month,active
		 FROM topics WHERE id=$1`, id)
	t, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Topic{}, ErrNotFound
	}
	return t, err
}

func (s *SQLStore) ListSubTopics(ctx context.Context, topicID string) ([]SubTopic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,name,priority,active
		 FROM sub_topics WHERE topic_id=$1 ORDER BY priority ASC`, topicID)
	if err != nil {
		return nil, fmt.Errorf("list sub topics: %w", err)
	}
	defer rows.Close()
	var out []SubTopic
	for rows.Next() {
		var st SubTopic
		if err := rows.Scan(&st.ID, &st.TopicID, &st.Name, &st.Priority, &st.Active); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListQuestions(ctx context.Context, topicID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,
		        referenced_question_id,formula,active
		 FROM questions WHERE topic_id=$1 ORDER BY priority ASC`, topicID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.TopicID, &q.SubTopicID, &q.Text, &q.Type,
			&q.Priority, &q.Strategy, &q.RefQuestionID, &q.Formula, &q.Active); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanTopic(r scanner) (Topic, error) {
	var t Topic
	err := r.Scan(&t.ID, &t.ModuleID, &t.Name, &t.Layout, &t.Priority,
		&t.ShowPrevious, &t.ShowCumulative, &t.FiscalStartMonth, &t.FiscalEndMonth, &t.Active)
	return t, err
}
