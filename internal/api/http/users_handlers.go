package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opstat/opstat/internal/identity"
)

type userRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	UnitID   string `json:"unit_id"`
	Password string `json:"password,omitempty"` // plaintext optional (LAN-only)

	PSCount          int `json:"ps_count"`
	SubdivisionCount int `json:"subdivision_count"`
	CircleCount      int `json:"circle_count"`
	PSOPCount        int `json:"psop_count"`
}

// BulkUpsertUsersHandler accepts either a multipart file= (CSV or JSON) or a
// raw JSON array of user rows.
func BulkUpsertUsersHandler(users identity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []userRow
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			f, _, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file required", 400)
				return
			}
			defer f.Close()
			// sniff simple CSV vs JSON by first non-space byte
			buf := make([]byte, 1)
			if _, err := f.Read(buf); err != nil {
				http.Error(w, "empty file", 400)
				return
			}
			if s, ok := f.(io.Seeker); ok {
				_, _ = s.Seek(0, io.SeekStart)
			}
			if buf[0] == '[' || buf[0] == '{' {
				if err := json.NewDecoder(f).Decode(&rows); err != nil {
					http.Error(w, "bad json", 400)
					return
				}
			} else {
				rs, err := parseUserCSV(f)
				if err != nil {
					http.Error(w, "bad csv: "+err.Error(), 400)
					return
				}
				rows = rs
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
				http.Error(w, "expected JSON array or multipart file", 400)
				return
			}
		}

		saved := 0
		for _, row := range rows {
			u, err := toUser(row)
			if err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			// Update keeps the stored hash when no password is supplied;
			// a brand-new user must bring one or the account could never
			// log in.
			existing, found, err := lookupUser(r.Context(), users, u)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			if found {
				u.ID = existing.ID
				if u.PassHash == "" {
					u.PassHash = existing.PassHash
				}
			} else {
				if u.PassHash == "" {
					http.Error(w, "password required for new user: "+u.Username, 400)
					return
				}
				if u.ID == "" {
					u.ID = uuid.NewString()
				}
			}
			if err := users.UpsertUser(r.Context(), u); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			saved++
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"saved": saved})
	}
}

// lookupUser matches an incoming row against the store by ID first, then by
// username, so re-uploads without IDs update instead of duplicating.
func lookupUser(ctx context.Context, users identity.Store, u identity.User) (identity.User, bool, error) {
	if u.ID != "" {
		got, err := users.GetUser(ctx, u.ID)
		if err == nil {
			return got, true, nil
		}
		if !errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, false, err
		}
	}
	got, err := users.GetUserByUsername(ctx, u.Username)
	if err == nil {
		return got, true, nil
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return identity.User{}, false, err
	}
	return identity.User{}, false, nil
}

func toUser(row userRow) (identity.User, error) {
	role := strings.ToLower(row.Role)
	if role == "" {
		role = "unit"
	}
	if role != "unit" && role != "reviewer" && role != "admin" {
		return identity.User{}, errors.New("invalid role: " + row.Role)
	}
	if row.Username == "" {
		return identity.User{}, errors.New("username required")
	}
	u := identity.User{
		ID:               row.ID,
		Username:         row.Username,
		Role:             role,
		UnitID:           row.UnitID,
		PSCount:          row.PSCount,
		SubdivisionCount: row.SubdivisionCount,
		CircleCount:      row.CircleCount,
		PSOPCount:        row.PSOPCount,
	}
	if row.Password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(row.Password), 12)
		if err != nil {
			return identity.User{}, err
		}
		u.PassHash = string(b)
	}
	return u, nil
}

func ListUsersHandler(users identity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := users.ListUsers(r.Context(), r.URL.Query().Get("role"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func parseUserCSV(r io.Reader) ([]userRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range []string{"username", "role"} {
		if _, ok := idx[k]; !ok {
			return nil, errors.New("missing column: " + k)
		}
	}
	num := func(rec []string, col string) int {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return 0
		}
		n, _ := strconv.Atoi(strings.TrimSpace(rec[i]))
		return n
	}
	str := func(rec []string, col string) string {
		if i, ok := idx[col]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}
	var rows []userRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, userRow{
			ID:               str(rec, "id"),
			Username:         str(rec, "username"),
			Role:             strings.ToLower(str(rec, "role")),
			UnitID:           str(rec, "unit_id"),
			Password:         str(rec, "password"),
			PSCount:          num(rec, "ps_count"),
			SubdivisionCount: num(rec, "subdivision_count"),
			CircleCount:      num(rec, "circle_count"),
			PSOPCount:        num(rec, "psop_count"),
		})
	}
	return rows, nil
}
