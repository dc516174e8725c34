package game

import (
	"fmt"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

// Dataset is one consistent view of the whole competition: every team and
// every challenge, in stable seed order. The store hands out deep copies and
// installs mutated copies atomically, so a Dataset never shows a half-applied
// compound mutation.
type Dataset struct {
	Teams      []team.Team
	Challenges []challenge.Challenge
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Teams:      make([]team.Team, len(d.Teams)),
		Challenges: make([]challenge.Challenge, len(d.Challenges)),
	}
	for i, t := range d.Teams {
		out.Teams[i] = t.Clone()
	}
	for i, c := range d.Challenges {
		out.Challenges[i] = c.Clone()
	}
	return out
}

// Team returns a pointer into the dataset for in-place mutation, or nil.
func (d *Dataset) Team(id string) *team.Team {
	for i := range d.Teams {
		if d.Teams[i].ID == id {
			return &d.Teams[i]
		}
	}
	return nil
}

// Challenge returns a pointer into the dataset for in-place mutation, or nil.
func (d *Dataset) Challenge(id string) *challenge.Challenge {
	for i := range d.Challenges {
		if d.Challenges[i].ID == id {
			return &d.Challenges[i]
		}
	}
	return nil
}

// FindPlayer locates a player anywhere in the dataset and returns the owning
// team together with the player's roster index.
func (d *Dataset) FindPlayer(playerID string) (*team.Team, int) {
	for i := range d.Teams {
		for j := range d.Teams[i].Players {
			if d.Teams[i].Players[j].ID == playerID {
				return &d.Teams[i], j
			}
		}
	}
	return nil, -1
}

// Validate checks per-entity rules plus the cross-entity invariants: ids are
// unique, players are unique across all teams, a team appears in a
// challenge's winners iff the challenge appears in the team's completed list
// (unless the challenge is disabled, which removes the completed entry while
// keeping the winner record), and each cached team total matches the
// recomputed sum.
func (d Dataset) Validate() error {
	teamIDs := make(map[string]struct{}, len(d.Teams))
	playerIDs := make(map[string]string, len(d.Teams)*4)
	for _, t := range d.Teams {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := teamIDs[t.ID]; dup {
			return fmt.Errorf("duplicate team id %s", t.ID)
		}
		teamIDs[t.ID] = struct{}{}
		for _, p := range t.Players {
			if owner, dup := playerIDs[p.ID]; dup {
				return fmt.Errorf("player %s appears in teams %s and %s", p.ID, owner, t.ID)
			}
			playerIDs[p.ID] = t.ID
		}
	}

	challengeIDs := make(map[string]struct{}, len(d.Challenges))
	for _, c := range d.Challenges {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := challengeIDs[c.ID]; dup {
			return fmt.Errorf("duplicate challenge id %s", c.ID)
		}
		challengeIDs[c.ID] = struct{}{}

		for _, winnerID := range c.Winners {
			if _, ok := teamIDs[winnerID]; !ok {
				return fmt.Errorf("challenge %s lists unknown winner team %s", c.ID, winnerID)
			}
		}
	}

	for _, t := range d.Teams {
		for _, challengeID := range t.CompletedChallenges {
			c := d.Challenge(challengeID)
			if c == nil {
				return fmt.Errorf("team %s completed unknown challenge %s", t.ID, challengeID)
			}
			if !c.HasWinner(t.ID) {
				return fmt.Errorf("team %s completed challenge %s but is not a winner", t.ID, challengeID)
			}
		}
	}
	for i := range d.Challenges {
		c := &d.Challenges[i]
		for _, winnerID := range c.Winners {
			winner := d.Team(winnerID)
			completed := winner.HasCompleted(c.ID)
			if c.Disabled && completed {
				return fmt.Errorf("challenge %s is disabled but team %s still has it completed", c.ID, winnerID)
			}
			if !c.Disabled && !completed {
				return fmt.Errorf("challenge %s has winner %s without a completed entry", c.ID, winnerID)
			}
		}
	}

	for _, t := range d.Teams {
		want := t.PersonalTotal()
		for _, challengeID := range t.CompletedChallenges {
			if c := d.Challenge(challengeID); c != nil && !c.Disabled {
				want += c.Points
			}
		}
		if t.Points != want {
			return fmt.Errorf("team %s cached points %d do not match recomputed total %d", t.ID, t.Points, want)
		}
	}

	return nil
}
