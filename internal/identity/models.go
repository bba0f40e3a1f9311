// Package identity holds the user records this service trusts the login
// layer to have authenticated. The numeric *Count attributes feed the
// attr_* default strategies of the questionnaire engine.
package identity

import (
	"context"
	"errors"
	"strconv"

	"github.com/opstat/opstat/internal/catalog"
)

var ErrNotFound = errors.New("identity: user not found")

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	PassHash string `json:"-"`
	Role     string `json:"role"`
	UnitID   string `json:"unit_id"`

	PSCount          int `json:"ps_count"`
	SubdivisionCount int `json:"subdivision_count"`
	CircleCount      int `json:"circle_count"`
	PSOPCount        int `json:"psop_count"`
}

// Attr returns the stringified attribute backing a user-attribute strategy,
// or "" when the strategy does not read the user record.
func (u User) Attr(s catalog.DefaultStrategy) (string, bool) {
	switch s {
	case catalog.StrategyAttrPS:
		return strconv.Itoa(u.PSCount), true
	case catalog.StrategyAttrSub:
		return strconv.Itoa(u.SubdivisionCount), true
	case catalog.StrategyAttrCircle:
		return strconv.Itoa(u.CircleCount), true
	case catalog.StrategyAttrPSOP:
		return strconv.Itoa(u.PSOPCount), true
	}
	return "", false
}

type Store interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context, role string) ([]User, error)
	UpsertUser(ctx context.Context, u User) error
}
