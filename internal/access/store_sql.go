package access

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLGrantStore struct {
	db *sql.DB
}

func NewSQLGrantStore(db *sql.DB) *SQLGrantStore { return &SQLGrantStore{db: db} }

func (s *SQLGrantStore) TopicGrants(ctx context.Context, roleID string) ([]string, error) {
	return s.grants(ctx, `SELECT topic_id FROM role_topic_grants WHERE role_id=$1`, roleID)
}

func (s *SQLGrantStore) QuestionGrants(ctx context.Context, roleID string) ([]string, error) {
	return s.grants(ctx, `SELECT question_id FROM role_question_grants WHERE role_id=$1`, roleID)
}

func (s *SQLGrantStore) grants(ctx context.Context, query, roleID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("grants: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
