package team

import "fmt"

// Player is a single participant. A player belongs to exactly one team at a
// time; ownership moves only through the scoring engine's swap operation.
type Player struct {
	ID             string
	FirstName      string
	LastName       string
	PersonalPoints int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.PersonalPoints < 0 {
		return fmt.Errorf("player %s personal points must not be negative", p.ID)
	}

	return nil
}

// Team is a competing squad. Points is a cached total: personal points of the
// roster plus the points of every completed, non-disabled challenge. Every
// mutation maintains it incrementally; the ranking projector recomputes it
// from scratch, which is how drift would surface.
type Team struct {
	ID                  string
	Name                string
	Color               string
	Points              int
	CompletedChallenges []string
	Players             []Player
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Points < 0 {
		return fmt.Errorf("team %s points must not be negative", t.ID)
	}

	seen := make(map[string]struct{}, len(t.CompletedChallenges))
	for _, challengeID := range t.CompletedChallenges {
		if challengeID == "" {
			return fmt.Errorf("team %s has an empty completed challenge id", t.ID)
		}
		if _, dup := seen[challengeID]; dup {
			return fmt.Errorf("team %s completed challenge %s twice", t.ID, challengeID)
		}
		seen[challengeID] = struct{}{}
	}

	playerIDs := make(map[string]struct{}, len(t.Players))
	for _, p := range t.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
		if _, dup := playerIDs[p.ID]; dup {
			return fmt.Errorf("team %s has duplicate player id %s", t.ID, p.ID)
		}
		playerIDs[p.ID] = struct{}{}
	}

	return nil
}

// HasCompleted reports whether the challenge id is in the completed list.
func (t Team) HasCompleted(challengeID string) bool {
	for _, id := range t.CompletedChallenges {
		if id == challengeID {
			return true
		}
	}
	return false
}

// PersonalTotal sums personal points across the roster.
func (t Team) PersonalTotal() int {
	total := 0
	for _, p := range t.Players {
		total += p.PersonalPoints
	}
	return total
}

// Clone returns a deep copy safe to hand outside the store.
func (t Team) Clone() Team {
	out := t
	out.CompletedChallenges = append([]string(nil), t.CompletedChallenges...)
	out.Players = append([]Player(nil), t.Players...)
	return out
}
