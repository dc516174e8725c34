package seed

import (
	"os"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

// File shapes match the original data files: camelCase keys, ISO-8601
// timestamps, challenge types as plain strings.

type playerRecord struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PersonalPoints int    `json:"personalPoints"`
}

type teamRecord struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Color               string         `json:"color"`
	Points              int            `json:"points"`
	CompletedChallenges []string       `json:"completedChallenges"`
	Players             []playerRecord `json:"players"`
}

type challengeRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Type        string   `json:"type"`
	AvailableAt string   `json:"availableAt"`
	Winners     []string `json:"winners"`
	Disabled    bool     `json:"disabled"`
}

// Load reads and validates a full dataset from the two seed files. The
// dataset is rejected when ids collide, winners and completed lists
// disagree, or a cached team total does not match its recomputed sum.
func Load(teamsPath, challengesPath string) (game.Dataset, error) {
	teams, err := loadTeams(teamsPath)
	if err != nil {
		return game.Dataset{}, err
	}
	challenges, err := loadChallenges(challengesPath)
	if err != nil {
		return game.Dataset{}, err
	}

	dataset := game.Dataset{Teams: teams, Challenges: challenges}
	if err := dataset.Validate(); err != nil {
		return game.Dataset{}, crerr.Wrap(err, "seed dataset is inconsistent")
	}

	return dataset, nil
}

func loadTeams(path string) ([]team.Team, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read teams seed %s", path)
	}

	var records []teamRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Wrapf(err, "decode teams seed %s", path)
	}

	out := make([]team.Team, 0, len(records))
	for _, record := range records {
		players := make([]team.Player, 0, len(record.Players))
		for _, p := range record.Players {
			players = append(players, team.Player{
				ID:             p.ID,
				FirstName:      p.FirstName,
				LastName:       p.LastName,
				PersonalPoints: p.PersonalPoints,
			})
		}
		out = append(out, team.Team{
			ID:                  record.ID,
			Name:                record.Name,
			Color:               record.Color,
			Points:              record.Points,
			CompletedChallenges: record.CompletedChallenges,
			Players:             players,
		})
	}

	return out, nil
}

func loadChallenges(path string) ([]challenge.Challenge, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read challenges seed %s", path)
	}

	var records []challengeRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Wrapf(err, "decode challenges seed %s", path)
	}

	out := make([]challenge.Challenge, 0, len(records))
	for _, record := range records {
		challengeType, err := challenge.ParseType(record.Type)
		if err != nil {
			return nil, crerr.Wrapf(err, "challenges seed %s", path)
		}
		availableAt, err := time.Parse(time.RFC3339, record.AvailableAt)
		if err != nil {
			return nil, crerr.Wrapf(err, "challenge %s has a malformed availableAt", record.ID)
		}
		out = append(out, challenge.Challenge{
			ID:          record.ID,
			Name:        record.Name,
			Description: record.Description,
			Points:      record.Points,
			Type:        challengeType,
			AvailableAt: availableAt,
			Winners:     record.Winners,
			Disabled:    record.Disabled,
		})
	}

	return out, nil
}
