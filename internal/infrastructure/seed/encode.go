package seed

import (
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

// EncodeTeams marshals teams in the seed file format, so a written snapshot
// can be loaded back as a seed.
func EncodeTeams(teams []team.Team) ([]byte, error) {
	records := make([]teamRecord, 0, len(teams))
	for _, t := range teams {
		players := make([]playerRecord, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, playerRecord{
				ID:             p.ID,
				FirstName:      p.FirstName,
				LastName:       p.LastName,
				PersonalPoints: p.PersonalPoints,
			})
		}
		records = append(records, teamRecord{
			ID:                  t.ID,
			Name:                t.Name,
			Color:               t.Color,
			Points:              t.Points,
			CompletedChallenges: emptyIfNil(t.CompletedChallenges),
			Players:             players,
		})
	}

	raw, err := sonic.Marshal(records)
	if err != nil {
		return nil, crerr.Wrap(err, "encode teams")
	}
	return raw, nil
}

// EncodeChallenges marshals challenges in the seed file format.
func EncodeChallenges(challenges []challenge.Challenge) ([]byte, error) {
	records := make([]challengeRecord, 0, len(challenges))
	for _, c := range challenges {
		records = append(records, challengeRecord{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Points:      c.Points,
			Type:        string(c.Type),
			AvailableAt: c.AvailableAt.UTC().Format(time.RFC3339),
			Winners:     emptyIfNil(c.Winners),
			Disabled:    c.Disabled,
		})
	}

	raw, err := sonic.Marshal(records)
	if err != nil {
		return nil, crerr.Wrap(err, "encode challenges")
	}
	return raw, nil
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
