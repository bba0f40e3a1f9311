package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const userCols = `id,username,pass_hash,role,unit_id,ps_count,subdivision_count,circle_count,psop_count`

func (s *SQLStore) GetUser(ctx context.Context, id string) (User, error) {
	return s.one(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id)
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return s.one(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username)
}

func (s *SQLStore) one(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PassHash,
		&u.Role, &u.UnitID, &u.PSCount, &u.SubdivisionCount, &u.CircleCount, &u.PSOPCount)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *SQLStore) ListUsers(ctx context.Context, role string) ([]User, error) {
	query := `SELECT ` + userCols + ` FROM users ORDER BY username ASC`
	args := []any{}
	if role != "" {
		query = `SELECT ` + userCols + ` FROM users WHERE role=$1 ORDER BY username ASC`
		args = append(args, role)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PassHash, &u.Role, &u.UnitID,
			&u.PSCount, &u.SubdivisionCount, &u.CircleCount, &u.PSOPCount); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpsertUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET
		   username=EXCLUDED.username, pass_hash=EXCLUDED.pass_hash,
		   role=EXCLUDED.role, unit_id=EXCLUDED.unit_id,
		   ps_count=EXCLUDED.ps_count, subdivision_count=EXCLUDED.subdivision_count,
		   circle_count=EXCLUDED.circle_count, psop_count=EXCLUDED.psop_count`,
		u.ID, u.Username, u.PassHash, u.Role, u.UnitID,
		u.PSCount, u.SubdivisionCount, u.CircleCount, u.PSOPCount)
	return err
}
