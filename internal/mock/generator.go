package mock

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Jogadores e rótulos de torneio usados pelo mock
var (
	Players = []string{
		"Carlos Alcaraz", "Jannik Sinner", "Novak Djokovic", "Daniil Medvedev",
		"Taylor Fritz", "Alex De Minaur", "Ben Shelton", "Alexander Zverev",
	}
	Tournaments = []string{"ATP Paris", "WTA Finals", "Challenger"}
)

const (
	minEdge       = 3.5
	maxEdge       = 8.2
	minOdds       = 1.40
	maxOdds       = 3.20
	minConfidence = 75
	maxConfidence = 95
)

// Prediction é uma previsão aleatória; edge e confidence já vêm formatados em %
type Prediction struct {
	ID             string  `json:"id"`
	Player1        string  `json:"player1"`
	Player2        string  `json:"player2"`
	Edge           string  `json:"edge"`
	RecommendedBet string  `json:"recommended_bet"`
	Odds           float64 `json:"odds"`
	Tournament     string  `json:"tournament"`
	Confidence     string  `json:"confidence"`
}

// Generator produz previsões novas a cada chamada. Seguro para uso concorrente.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	count int
}

// NewGenerator cria o gerador; rng nil usa uma seed baseada no relógio
func NewGenerator(count int, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if count <= 0 {
		count = 20
	}
	return &Generator{rng: rng, count: count}
}

func (g *Generator) Count() int { return g.count }

func (g *Generator) Predictions() []Prediction {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Prediction, 0, g.count)
	for i := 0; i < g.count; i++ {
		i1 := g.rng.Intn(len(Players))
		i2 := g.rng.Intn(len(Players) - 1)
		if i2 >= i1 {
			i2++
		}
		p1, p2 := Players[i1], Players[i2]

		edge := decimal.NewFromFloat(g.between(minEdge, maxEdge)).Round(1)
		odds := decimal.NewFromFloat(g.between(minOdds, maxOdds)).Round(2)

		recommended := p2
		if g.rng.Intn(2) == 0 {
			recommended = p1
		}

		out = append(out, Prediction{
			ID:             fmt.Sprintf("match_%d", i+1),
			Player1:        p1,
			Player2:        p2,
			Edge:           edge.StringFixed(1) + "%",
			RecommendedBet: recommended,
			Odds:           odds.InexactFloat64(),
			Tournament:     Tournaments[g.rng.Intn(len(Tournaments))],
			Confidence:     fmt.Sprintf("%d%%", minConfidence+g.rng.Intn(maxConfidence-minConfidence+1)),
		})
	}
	return out
}

// gera número aleatório entre min e max
func (g *Generator) between(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}
