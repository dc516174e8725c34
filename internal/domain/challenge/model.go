package challenge

import (
	"fmt"
	"time"
)

// Type classifies how a challenge may be won.
type Type string

const (
	// TypeNormal challenges can be completed by any number of teams.
	TypeNormal Type = "normal"
	// TypeRare challenges are exclusive: first team to complete keeps it.
	TypeRare Type = "rare"
	// TypeSecret challenges are exclusive and hidden until discovered.
	TypeSecret Type = "secret"
)

func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeNormal, TypeRare, TypeSecret:
		return Type(raw), nil
	default:
		return "", fmt.Errorf("unknown challenge type %q", raw)
	}
}

// Challenge is a scoreable task. Winners records every team that completed
// it, in completion order. Disabling suppresses the scoring effect only; the
// winner record survives so re-enabling is lossless.
type Challenge struct {
	ID          string
	Name        string
	Description string
	Points      int
	Type        Type
	AvailableAt time.Time
	Winners     []string
	Disabled    bool
}

// Exclusive reports whether at most one team may ever hold the win.
func (c Challenge) Exclusive() bool {
	return c.Type == TypeRare || c.Type == TypeSecret
}

// HasWinner reports whether the team id is in the winners list.
func (c Challenge) HasWinner(teamID string) bool {
	for _, id := range c.Winners {
		if id == teamID {
			return true
		}
	}
	return false
}

// VisibleToPlayers reports whether players should see the challenge at the
// given instant. Admins always see everything.
func (c Challenge) VisibleToPlayers(now time.Time) bool {
	if c.Disabled {
		return false
	}
	return !c.AvailableAt.After(now)
}

func (c Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("challenge name is required")
	}
	if _, err := ParseType(string(c.Type)); err != nil {
		return fmt.Errorf("challenge %s: %w", c.ID, err)
	}

	seen := make(map[string]struct{}, len(c.Winners))
	for _, teamID := range c.Winners {
		if teamID == "" {
			return fmt.Errorf("challenge %s has an empty winner id", c.ID)
		}
		if _, dup := seen[teamID]; dup {
			return fmt.Errorf("challenge %s lists winner %s twice", c.ID, teamID)
		}
		seen[teamID] = struct{}{}
	}
	if c.Exclusive() && len(c.Winners) > 1 {
		return fmt.Errorf("challenge %s is exclusive but has %d winners", c.ID, len(c.Winners))
	}

	return nil
}

// Clone returns a deep copy safe to hand outside the store.
func (c Challenge) Clone() Challenge {
	out := c
	out.Winners = append([]string(nil), c.Winners...)
	return out
}
