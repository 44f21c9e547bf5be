package source

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

var favoriteRe = regexp.MustCompile(`Favorite:\s*([^,]+),\s*(\d+\.?\d*)%`)

// torneios de Grand Slam ficam fora da lista
var grandSlams = map[string]struct{}{
	"Roland Garros":   {},
	"Australian Open": {},
	"Wimbledon":       {},
	"US Open":         {},
}

// LevelFromName deduz o circuito pelo nome do torneio
func LevelFromName(name string) models.Level {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "challenger"):
		return models.LevelATPChallenger
	case strings.Contains(lower, "wta") && strings.Contains(name, "125"):
		return models.LevelWTA125
	case strings.Contains(lower, "wta"):
		return models.LevelWTA
	default:
		return models.LevelATP
	}
}

// SurfaceFromName usa palavras-chave do nome; sem pista, assume piso duro
func SurfaceFromName(name string) models.Surface {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "clay", "terre", "antwerp"):
		return models.SurfaceClay
	case containsAny(lower, "grass", "lawn"):
		return models.SurfaceGrass
	default:
		return models.SurfaceHard
	}
}

func LocationFromName(name string) string {
	loc := strings.ReplaceAll(name, "Challenger", "")
	loc = strings.ReplaceAll(loc, "WTA", "")
	loc = strings.ReplaceAll(loc, "125", "")
	return strings.TrimSpace(loc)
}

// ParseFavorite extrai "Favorite: <nome>, <pct>%"; nil quando não há
func ParseFavorite(text string) *models.Favorite {
	m := favoriteRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	pct, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	return &models.Favorite{
		Player:      strings.TrimSpace(m[1]),
		Probability: pct,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
