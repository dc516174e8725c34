package memory

import (
	"time"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/team"
)

// SeedDataset is the built-in competition used when no seed files are
// configured. Teams start with zero points and no completed challenges.
func SeedDataset() game.Dataset {
	return game.Dataset{
		Teams:      SeedTeams(),
		Challenges: SeedChallenges(),
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:    "team-red",
			Name:  "Les Rouges",
			Color: "#e53935",
			Players: []team.Player{
				{ID: "p-red-1", FirstName: "Camille", LastName: "Durand"},
				{ID: "p-red-2", FirstName: "Hugo", LastName: "Lefevre"},
				{ID: "p-red-3", FirstName: "Manon", LastName: "Girard"},
			},
		},
		{
			ID:    "team-blue",
			Name:  "Les Bleus",
			Color: "#1e88e5",
			Players: []team.Player{
				{ID: "p-blue-1", FirstName: "Lucas", LastName: "Moreau"},
				{ID: "p-blue-2", FirstName: "Emma", LastName: "Fontaine"},
				{ID: "p-blue-3", FirstName: "Nathan", LastName: "Roux"},
			},
		},
		{
			ID:    "team-green",
			Name:  "Les Verts",
			Color: "#43a047",
			Players: []team.Player{
				{ID: "p-green-1", FirstName: "Lea", LastName: "Bonnet"},
				{ID: "p-green-2", FirstName: "Tom", LastName: "Chevalier"},
				{ID: "p-green-3", FirstName: "Chloe", LastName: "Perrin"},
			},
		},
		{
			ID:    "team-yellow",
			Name:  "Les Jaunes",
			Color: "#fdd835",
			Players: []team.Player{
				{ID: "p-yellow-1", FirstName: "Jules", LastName: "Marchand"},
				{ID: "p-yellow-2", FirstName: "Zoe", LastName: "Renaud"},
				{ID: "p-yellow-3", FirstName: "Louis", LastName: "Garnier"},
			},
		},
	}
}

func SeedChallenges() []challenge.Challenge {
	openAt := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
	return []challenge.Challenge{
		{
			ID:          "ch-human-pyramid",
			Name:        "Pyramide humaine",
			Description: "Construire une pyramide humaine a trois etages et tenir dix secondes.",
			Points:      10,
			Type:        challenge.TypeNormal,
			AvailableAt: openAt,
		},
		{
			ID:          "ch-blind-taste",
			Name:        "Degustation a l'aveugle",
			Description: "Identifier cinq ingredients les yeux bandes.",
			Points:      15,
			Type:        challenge.TypeNormal,
			AvailableAt: openAt,
		},
		{
			ID:          "ch-golden-rabbit",
			Name:        "Le lapin dore",
			Description: "Retrouver le lapin dore cache dans le parc. Premiere equipe seulement.",
			Points:      25,
			Type:        challenge.TypeRare,
			AvailableAt: openAt,
		},
		{
			ID:          "ch-mascot-selfie",
			Name:        "Selfie avec la mascotte",
			Description: "Convaincre la mascotte de poser pour un selfie d'equipe.",
			Points:      20,
			Type:        challenge.TypeRare,
			AvailableAt: openAt.Add(2 * time.Hour),
		},
		{
			ID:          "ch-midnight-anthem",
			Name:        "Hymne de minuit",
			Description: "Chanter l'hymne complet de l'equipe devant le jury apres minuit.",
			Points:      30,
			Type:        challenge.TypeSecret,
			AvailableAt: openAt.Add(15 * time.Hour),
		},
		{
			ID:          "ch-water-relay",
			Name:        "Relais aquatique",
			Description: "Transporter deux litres d'eau a la cuillere sur cinquante metres.",
			Points:      10,
			Type:        challenge.TypeNormal,
			AvailableAt: openAt.Add(4 * time.Hour),
		},
	}
}
