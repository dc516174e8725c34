package game

import (
	"strings"
	"testing"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

func validDataset() Dataset {
	return Dataset{
		Teams: []team.Team{
			{
				ID: "t-1", Name: "Alpha", Color: "#ff0000", Points: 14,
				CompletedChallenges: []string{"c-1"},
				Players: []team.Player{
					{ID: "p-1", FirstName: "Ada", PersonalPoints: 4},
				},
			},
			{
				ID: "t-2", Name: "Beta", Color: "#0000ff", Points: 2,
				Players: []team.Player{
					{ID: "p-2", FirstName: "Bea", PersonalPoints: 2},
				},
			},
		},
		Challenges: []challenge.Challenge{
			{ID: "c-1", Name: "Climb", Type: challenge.TypeNormal, Points: 10, Winners: []string{"t-1"}},
			{ID: "c-2", Name: "Hidden", Type: challenge.TypeSecret, Points: 40},
		},
	}
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr string
	}{
		{
			name:   "valid dataset",
			mutate: func(_ *Dataset) {},
		},
		{
			name: "duplicate team id",
			mutate: func(d *Dataset) {
				d.Teams[1].ID = "t-1"
			},
			wantErr: "duplicate team id",
		},
		{
			name: "player owned by two teams",
			mutate: func(d *Dataset) {
				d.Teams[1].Players[0].ID = "p-1"
			},
			wantErr: "appears in teams",
		},
		{
			name: "winner without completed entry",
			mutate: func(d *Dataset) {
				d.Challenges[0].Winners = append(d.Challenges[0].Winners, "t-2")
			},
			wantErr: "without a completed entry",
		},
		{
			name: "completed entry without winner",
			mutate: func(d *Dataset) {
				d.Challenges[0].Winners = nil
			},
			wantErr: "is not a winner",
		},
		{
			name: "disabled challenge still completed",
			mutate: func(d *Dataset) {
				d.Challenges[0].Disabled = true
			},
			wantErr: "disabled but team",
		},
		{
			name: "cached total drifted",
			mutate: func(d *Dataset) {
				d.Teams[0].Points = 99
			},
			wantErr: "do not match recomputed total",
		},
		{
			name: "unknown completed challenge",
			mutate: func(d *Dataset) {
				d.Teams[0].CompletedChallenges = []string{"c-missing"}
			},
			wantErr: "unknown challenge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := validDataset()
			tt.mutate(&dataset)

			err := dataset.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid dataset, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDataset_CloneIsDetached(t *testing.T) {
	original := validDataset()
	clone := original.Clone()

	clone.Teams[0].Points = 1000
	clone.Teams[0].Players[0].PersonalPoints = 1000
	clone.Teams[0].CompletedChallenges[0] = "c-other"
	clone.Challenges[0].Winners[0] = "t-other"

	if original.Teams[0].Points != 14 {
		t.Fatalf("clone leaked team points: %d", original.Teams[0].Points)
	}
	if original.Teams[0].Players[0].PersonalPoints != 4 {
		t.Fatalf("clone leaked player points")
	}
	if original.Teams[0].CompletedChallenges[0] != "c-1" {
		t.Fatalf("clone shares completed challenges slice")
	}
	if original.Challenges[0].Winners[0] != "t-1" {
		t.Fatalf("clone shares winners slice")
	}
}

func TestDataset_FindPlayer(t *testing.T) {
	dataset := validDataset()

	owner, idx := dataset.FindPlayer("p-2")
	if owner == nil || owner.ID != "t-2" || idx != 0 {
		t.Fatalf("unexpected lookup result: owner=%v idx=%d", owner, idx)
	}

	owner, idx = dataset.FindPlayer("p-missing")
	if owner != nil || idx != -1 {
		t.Fatalf("expected miss, got owner=%v idx=%d", owner, idx)
	}
}
