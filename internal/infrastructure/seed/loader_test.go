package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

func writeSeedFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

const validTeamsJSON = `[
  {
    "id": "t1", "name": "Alpha", "color": "#f00", "points": 10,
    "completedChallenges": ["c1"],
    "players": [
      {"id": "p1", "firstName": "Ana", "lastName": "One", "personalPoints": 0}
    ]
  },
  {
    "id": "t2", "name": "Beta", "color": "#00f", "points": 4,
    "completedChallenges": [],
    "players": [
      {"id": "p2", "firstName": "Ben", "lastName": "Two", "personalPoints": 4}
    ]
  }
]`

const validChallengesJSON = `[
  {
    "id": "c1", "name": "First", "description": "", "points": 10,
    "type": "normal", "availableAt": "2026-07-04T10:00:00Z",
    "winners": ["t1"], "disabled": false
  },
  {
    "id": "c2", "name": "Hidden", "description": "find it", "points": 40,
    "type": "secret", "availableAt": "2026-07-04T18:00:00Z",
    "winners": [], "disabled": false
  }
]`

func TestLoad_ValidSeed(t *testing.T) {
	teamsPath := writeSeedFile(t, "teams.json", validTeamsJSON)
	challengesPath := writeSeedFile(t, "challenges.json", validChallengesJSON)

	dataset, err := Load(teamsPath, challengesPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(dataset.Teams) != 2 || len(dataset.Challenges) != 2 {
		t.Fatalf("unexpected dataset shape: %d teams, %d challenges", len(dataset.Teams), len(dataset.Challenges))
	}
	if dataset.Teams[0].Points != 10 || !dataset.Teams[0].HasCompleted("c1") {
		t.Fatalf("team t1 not decoded correctly: %+v", dataset.Teams[0])
	}
	c2 := dataset.Challenge("c2")
	if c2 == nil || c2.Type != challenge.TypeSecret {
		t.Fatalf("challenge c2 not decoded correctly: %+v", c2)
	}
	wantAt := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	if !c2.AvailableAt.Equal(wantAt) {
		t.Fatalf("availableAt mismatch: got %v want %v", c2.AvailableAt, wantAt)
	}
}

func TestLoad_RejectsInconsistentSeed(t *testing.T) {
	cases := []struct {
		name       string
		teams      string
		challenges string
	}{
		{
			"winner without completed entry",
			`[{"id":"t1","name":"Alpha","color":"#f00","points":0,"completedChallenges":[],"players":[]}]`,
			`[{"id":"c1","name":"First","description":"","points":10,"type":"normal","availableAt":"2026-07-04T10:00:00Z","winners":["t1"],"disabled":false}]`,
		},
		{
			"cached points diverge from recomputed total",
			`[{"id":"t1","name":"Alpha","color":"#f00","points":99,"completedChallenges":["c1"],"players":[]}]`,
			`[{"id":"c1","name":"First","description":"","points":10,"type":"normal","availableAt":"2026-07-04T10:00:00Z","winners":["t1"],"disabled":false}]`,
		},
		{
			"unknown challenge type",
			`[{"id":"t1","name":"Alpha","color":"#f00","points":0,"completedChallenges":[],"players":[]}]`,
			`[{"id":"c1","name":"First","description":"","points":10,"type":"legendary","availableAt":"2026-07-04T10:00:00Z","winners":[],"disabled":false}]`,
		},
		{
			"malformed availableAt",
			`[{"id":"t1","name":"Alpha","color":"#f00","points":0,"completedChallenges":[],"players":[]}]`,
			`[{"id":"c1","name":"First","description":"","points":10,"type":"normal","availableAt":"july 4th","winners":[],"disabled":false}]`,
		},
		{
			"duplicate player across teams",
			`[
			  {"id":"t1","name":"Alpha","color":"#f00","points":0,"completedChallenges":[],"players":[{"id":"p1","firstName":"Ana","lastName":"One","personalPoints":0}]},
			  {"id":"t2","name":"Beta","color":"#00f","points":0,"completedChallenges":[],"players":[{"id":"p1","firstName":"Ana","lastName":"One","personalPoints":0}]}
			]`,
			`[]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			teamsPath := writeSeedFile(t, "teams.json", tc.teams)
			challengesPath := writeSeedFile(t, "challenges.json", tc.challenges)

			if _, err := Load(teamsPath, challengesPath); err == nil {
				t.Fatalf("expected load to fail")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	challengesPath := writeSeedFile(t, "challenges.json", `[]`)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json"), challengesPath); err == nil {
		t.Fatalf("expected load to fail on a missing teams file")
	}
}

func TestEncode_RoundTripsThroughLoad(t *testing.T) {
	teams := []team.Team{
		{
			ID: "t1", Name: "Alpha", Color: "#f00", Points: 13,
			CompletedChallenges: []string{"c1"},
			Players: []team.Player{
				{ID: "p1", FirstName: "Ana", LastName: "One", PersonalPoints: 3},
			},
		},
	}
	challenges := []challenge.Challenge{
		{
			ID: "c1", Name: "First", Points: 10, Type: challenge.TypeRare,
			AvailableAt: time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC),
			Winners:     []string{"t1"},
		},
	}

	teamsRaw, err := EncodeTeams(teams)
	if err != nil {
		t.Fatalf("encode teams: %v", err)
	}
	challengesRaw, err := EncodeChallenges(challenges)
	if err != nil {
		t.Fatalf("encode challenges: %v", err)
	}

	dir := t.TempDir()
	teamsPath := filepath.Join(dir, "teams.json")
	challengesPath := filepath.Join(dir, "challenges.json")
	if err := os.WriteFile(teamsPath, teamsRaw, 0o600); err != nil {
		t.Fatalf("write teams: %v", err)
	}
	if err := os.WriteFile(challengesPath, challengesRaw, 0o600); err != nil {
		t.Fatalf("write challenges: %v", err)
	}

	dataset, err := Load(teamsPath, challengesPath)
	if err != nil {
		t.Fatalf("load encoded snapshot: %v", err)
	}
	if dataset.Teams[0].Points != 13 || dataset.Teams[0].Players[0].PersonalPoints != 3 {
		t.Fatalf("team did not survive the round trip: %+v", dataset.Teams[0])
	}
	if got := dataset.Challenges[0]; got.Type != challenge.TypeRare || !got.HasWinner("t1") {
		t.Fatalf("challenge did not survive the round trip: %+v", got)
	}
}
