package db

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

// SeedDemo loads a small demo catalog, grants and users into an empty
// database. Every statement is conflict-tolerant so re-running is harmless.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), 12)
	if err != nil {
		return err
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO modules (id,name,priority,active) VALUES ($1,$2,$3,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"mod-crime", "Crime Statistics", 1}},
		{`INSERT INTO modules (id,name,priority,active) VALUES ($1,$2,$3,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"mod-admin", "Administration", 2}},

		{`INSERT INTO topics (id,module_id,name,form_layout,priority,show_previous,show_cumulative,fiscal_start_month,fiscal_end_month,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"top-firs", "mod-crime", "FIRs Registered", "normal", 1, true, true, 4, 3}},
		{`INSERT INTO topics (id,module_id,name,form_layout,priority,show_previous,show_cumulative,fiscal_start_month,fiscal_end_month,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"top-strength", "mod-admin", "Sanctioned Strength", "question_over_subtopic", 1, false, false, 4, 3}},

		{`INSERT INTO sub_topics (id,topic_id,name,priority,active) VALUES ($1,$2,$3,$4,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"st-off", "top-strength", "Officers", 1}},
		{`INSERT INTO sub_topics (id,topic_id,name,priority,active) VALUES ($1,$2,$3,$4,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"st-men", "top-strength", "Other Ranks", 2}},

		{`INSERT INTO questions (id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,referenced_question_id,formula,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"q-fir-total", "top-firs", "", "FIRs registered this month", "number", 1, "none", "", ""}},
		{`INSERT INTO questions (id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,referenced_question_id,formula,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"q-fir-pending", "top-firs", "", "FIRs pending from previous month", "number", 2, "previous", "", ""}},
		{`INSERT INTO questions (id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,referenced_question_id,formula,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"q-ps-count", "top-firs", "", "Police stations in unit", "number", 3, "attr_ps", "", ""}},
		{`INSERT INTO questions (id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,referenced_question_id,formula,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"q-sanctioned", "top-strength", "", "Sanctioned posts", "number", 1, "none", "", ""}},
		{`INSERT INTO questions (id,topic_id,sub_topic_id,text,value_type,priority,default_strategy,referenced_question_id,formula,active)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE) ON CONFLICT (id) DO NOTHING`,
			[]any{"q-posted", "top-strength", "", "Posted strength", "number", 2, "none", "", ""}},

		{`INSERT INTO role_topic_grants (role_id,topic_id) VALUES ($1,$2) ON CONFLICT (role_id,topic_id) DO NOTHING`,
			[]any{"unit", "top-firs"}},
		{`INSERT INTO role_topic_grants (role_id,topic_id) VALUES ($1,$2) ON CONFLICT (role_id,topic_id) DO NOTHING`,
			[]any{"unit", "top-strength"}},
	}
	for _, q := range []string{"q-fir-total", "q-fir-pending", "q-ps-count", "q-sanctioned", "q-posted"} {
		stmts = append(stmts, struct {
			q    string
			args []any
		}{`INSERT INTO role_question_grants (role_id,question_id) VALUES ($1,$2) ON CONFLICT (role_id,question_id) DO NOTHING`,
			[]any{"unit", q}})
	}
	stmts = append(stmts, struct {
		q    string
		args []any
	}{`INSERT INTO users (id,username,pass_hash,role,unit_id,ps_count,subdivision_count,circle_count,psop_count)
	   VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT (id) DO NOTHING`,
		[]any{"u-demo", "demo", string(hash), "unit", "bn-7", 12, 3, 4, 2}})

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.q, s.args...); err != nil {
			return err
		}
	}
	return nil
}
