package source

import "github.com/radieske/tennis-edge-api/internal/tennis/models"

// Fallback retorna a lista fixa de torneios usada quando o scraping falha.
// Cada chamada devolve uma cópia nova (inclusive dos favoritos).
func Fallback() []models.Tournament {
	return []models.Tournament{
		{Name: "Istanbul Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceHard, Location: "Istanbul", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Alex Molcan", Probability: 32.9}},
		{Name: "Genoa Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceClay, Location: "Genoa", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Luciano Darderi", Probability: 58.8}},
		{Name: "Seville Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceClay, Location: "Seville", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Pablo Carreno Busta", Probability: 22.2}},
		{Name: "Shanghai Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceHard, Location: "Shanghai", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Daniel Evans", Probability: 23.9}},
		{Name: "WTA Montreux 125", Level: models.LevelWTA125, Surface: models.SurfaceClay, Location: "Montreux", Section: models.SectionWomen, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Anca Alexia Todoni", Probability: 21.3}},
		{Name: "WTA Guadalajara 125", Level: models.LevelWTA125, Surface: models.SurfaceHard, Location: "Guadalajara", Section: models.SectionWomen, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Anca Alexia Todoni", Probability: 21.3}},
	}
}
