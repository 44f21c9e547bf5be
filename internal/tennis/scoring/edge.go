package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

// NeutralEdge é devolvido quando o edge não pode ser calculado
var NeutralEdge = models.Edge{
	EnhancedEdge:      0,
	LevelMultiplier:   1.0,
	RankMultiplier:    1.0,
	SurfaceMultiplier: 1.0,
	ChallengerLevel:   false,
	IsValueBet:        false,
	BetStrength:       models.StrengthLow,
}

// Model aplica os multiplicadores de edge e classifica o resultado com os limiares do Config
type Model struct {
	cfg Config
}

func NewModel(cfg Config) *Model { return &Model{cfg: cfg} }

func (m *Model) Config() Config { return m.cfg }

// EnhancedEdge calcula o edge de uma partida já com probabilidades.
// O valor é arredondado em uma casa decimal antes da classificação, para que
// bet_strength e is_value_bet sempre concordem com o número exposto.
func (m *Model) EnhancedEdge(match models.Match, t models.Tournament) (models.Edge, error) {
	p1 := match.Player1WinProbability
	if math.IsNaN(p1) || p1 < 0 || p1 > 1 {
		return NeutralEdge, fmt.Errorf("invalid player1 probability %v", p1)
	}
	if match.Player1.Rank <= 0 || match.Player2.Rank <= 0 {
		return NeutralEdge, fmt.Errorf("invalid ranks %d/%d", match.Player1.Rank, match.Player2.Rank)
	}

	base := math.Abs(p1-0.5) * 2
	levelMult, challenger := levelMultiplier(t.Level)
	rankMult := rankMultiplier(float64(match.Player1.Rank+match.Player2.Rank) / 2)
	surfaceMult := surfaceMultiplier(match.Player1, match.Player2, t.Surface)

	edge := Round1(base * levelMult * rankMult * surfaceMult * 100)

	return models.Edge{
		EnhancedEdge:      edge,
		LevelMultiplier:   levelMult,
		RankMultiplier:    rankMult,
		SurfaceMultiplier: surfaceMult,
		ChallengerLevel:   challenger,
		IsValueBet:        m.IsValueBet(edge),
		BetStrength:       m.Strength(edge),
	}, nil
}

// Strength classifica o edge; os limites são exclusivos (30.0 ainda é "High")
func (m *Model) Strength(edge float64) models.BetStrength {
	switch {
	case edge > m.cfg.Tiers.VeryHigh:
		return models.StrengthVeryHigh
	case edge > m.cfg.Tiers.High:
		return models.StrengthHigh
	case edge > m.cfg.Tiers.Medium:
		return models.StrengthMedium
	default:
		return models.StrengthLow
	}
}

func (m *Model) IsValueBet(edge float64) bool { return edge > m.cfg.ValueBetThreshold }

// WTA 125 conta como nível challenger para as estatísticas
func levelMultiplier(level models.Level) (float64, bool) {
	l := strings.ToLower(string(level))
	switch {
	case strings.Contains(l, "challenger"):
		return 2.5, true
	case strings.Contains(l, "wta 125"):
		return 1.8, true
	default:
		return 1.2, false
	}
}

func rankMultiplier(avgRank float64) float64 {
	switch {
	case avgRank > 250:
		return 2.5
	case avgRank > 150:
		return 2.0
	case avgRank > 100:
		return 1.5
	default:
		return 1.0
	}
}

// bônus quando exatamente um dos jogadores é especialista no piso
func surfaceMultiplier(p1, p2 models.Player, surface models.Surface) float64 {
	if surface == "" {
		surface = models.SurfaceHard
	}
	pref1 := preference(p1)
	pref2 := preference(p2)
	if (pref1 == surface) != (pref2 == surface) {
		return 1.3
	}
	return 1.0
}

func preference(p models.Player) models.Surface {
	if p.SurfacePreference == "" {
		return models.SurfaceHard
	}
	return p.SurfacePreference
}

// Round1 arredonda para uma casa decimal (meio para longe do zero)
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
