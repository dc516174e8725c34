package httpapi

import (
	"time"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/session"
	"github.com/quilitane/cunilympiades/internal/domain/team"
	"github.com/quilitane/cunilympiades/internal/usecase"
)

// Wire shapes match the original front end: camelCase keys, ISO timestamps,
// winners and completedChallenges always present as arrays.

type playerDTO struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PersonalPoints int    `json:"personalPoints"`
}

type teamDTO struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Color               string      `json:"color"`
	Points              int         `json:"points"`
	CompletedChallenges []string    `json:"completedChallenges"`
	Players             []playerDTO `json:"players"`
}

type challengeDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Type        string   `json:"type"`
	AvailableAt string   `json:"availableAt"`
	Winners     []string `json:"winners"`
	Disabled    bool     `json:"disabled"`
}

type standingDTO struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	// Total is omitted while suspense mode hides the scores.
	Total *int `json:"total,omitempty"`
}

type rankingDTO struct {
	Suspense bool          `json:"suspense"`
	Entries  []standingDTO `json:"entries"`
}

type sessionStateDTO struct {
	SuspenseMode  bool     `json:"suspenseMode"`
	SuspenseOrder []string `json:"suspenseOrder"`
	PauseUntil    *string  `json:"pauseUntil"`
	Paused        bool     `json:"paused"`
}

type mutationResultDTO struct {
	Applied    bool           `json:"applied"`
	Reason     string         `json:"reason,omitempty"`
	Teams      []teamDTO      `json:"teams,omitempty"`
	Challenges []challengeDTO `json:"challenges,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	players := make([]playerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, playerDTO{
			ID:             p.ID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PersonalPoints: p.PersonalPoints,
		})
	}
	completed := t.CompletedChallenges
	if completed == nil {
		completed = []string{}
	}
	return teamDTO{
		ID:                  t.ID,
		Name:                t.Name,
		Color:               t.Color,
		Points:              t.Points,
		CompletedChallenges: completed,
		Players:             players,
	}
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

func challengeToDTO(c challenge.Challenge) challengeDTO {
	winners := c.Winners
	if winners == nil {
		winners = []string{}
	}
	return challengeDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Points:      c.Points,
		Type:        string(c.Type),
		AvailableAt: c.AvailableAt.UTC().Format(time.RFC3339),
		Winners:     winners,
		Disabled:    c.Disabled,
	}
}

func challengesToDTO(challenges []challenge.Challenge) []challengeDTO {
	out := make([]challengeDTO, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, challengeToDTO(c))
	}
	return out
}

func leaderboardToDTO(board usecase.Leaderboard) rankingDTO {
	entries := make([]standingDTO, 0, len(board.Entries))
	for _, entry := range board.Entries {
		row := standingDTO{TeamID: entry.TeamID, Name: entry.Name, Color: entry.Color}
		if !board.Suspense {
			total := entry.Total
			row.Total = &total
		}
		entries = append(entries, row)
	}
	return rankingDTO{Suspense: board.Suspense, Entries: entries}
}

func sessionStatusToDTO(status usecase.SessionStatus) sessionStateDTO {
	return sessionStateToDTO(status.State, status.Paused)
}

func sessionStateToDTO(state session.State, paused bool) sessionStateDTO {
	order := state.SuspenseOrder
	if order == nil {
		order = []string{}
	}
	var pauseUntil *string
	if state.PauseUntil != nil {
		formatted := state.PauseUntil.UTC().Format(time.RFC3339)
		pauseUntil = &formatted
	}
	return sessionStateDTO{
		SuspenseMode:  state.SuspenseMode,
		SuspenseOrder: order,
		PauseUntil:    pauseUntil,
		Paused:        paused,
	}
}
