package submission

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Upsert(ctx context.Context, key Key, value string, status Status) (Submission, error) {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id,user_id,question_id,period,sub_topic_id,company_id,value,status,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (user_id,question_id,period,sub_topic_id,company_id)
		 DO UPDATE SET value=EXCLUDED.value, status=EXCLUDED.status, updated_at=EXCLUDED.updated_at`,
		uuid.NewString(), key.UserID, key.QuestionID, key.Period, key.SubTopicID, key.CompanyID,
		value, string(status), now)
	if err != nil {
		return Submission{}, err
	}
	sub, _, err := s.Find(ctx, key)
	return sub, err
}

func (s *SQLStore) Find(ctx context.Context, key Key) (Submission, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,question_id,period,sub_topic_id,company_id,value,status,updated_at
		 FROM submissions
		 WHERE user_id=$1 AND question_id=$2 AND period=$3 AND sub_topic_id=$4 AND company_id=$5`,
		key.UserID, key.QuestionID, key.Period, key.SubTopicID, key.CompanyID)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, false, nil
	}
	if err != nil {
		return Submission{}, false, err
	}
	return sub, true, nil
}

func (s *SQLStore) FindByUserAndPeriod(ctx context.Context, userID, period string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,question_id,period,sub_topic_id,company_id,value,status,updated_at
		 FROM submissions WHERE user_id=$1 AND period=$2`, userID, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanSubmission(r scanner) (Submission, error) {
	var sub Submission
	var status string
	err := r.Scan(&sub.ID, &sub.Key.UserID, &sub.Key.QuestionID, &sub.Key.Period,
		&sub.Key.SubTopicID, &sub.Key.CompanyID, &sub.Value, &status, &sub.UpdatedAt)
	sub.Status = Status(status)
	return sub, err
}
