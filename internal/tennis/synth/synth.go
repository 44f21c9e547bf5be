package synth

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/catalog"
	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/internal/tennis/scoring"
)

const (
	minMatches = 4
	maxMatches = 8
	minPool    = 4

	challengerMinRank = 50
	challengerMaxAge  = 35
	mainTourMaxRank   = 100
)

// Synthesizer gera partidas de demonstração para os torneios ativos.
// Não é seguro para uso concorrente (o *rand.Rand não é); o agregador serializa as chamadas.
type Synthesizer struct {
	catalog *catalog.Catalog
	model   *scoring.Model
	rng     *rand.Rand
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Synthesizer)

// WithRand troca a fonte aleatória (testes usam uma seed fixa)
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

func New(cat *catalog.Catalog, model *scoring.Model, log *zap.Logger, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		catalog: cat,
		model:   model,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize devolve as partidas na ordem de geração; ordenar é papel do agregador
func (s *Synthesizer) Synthesize(tournaments []models.Tournament) []models.Match {
	date := s.now().Format("2006-01-02")

	var out []models.Match
	for _, t := range tournaments {
		pool := s.pool(t)
		if len(pool) < 2 {
			s.log.Warn("player pool too small, skipping tournament",
				zap.String("tournament", t.Name), zap.Int("pool", len(pool)))
			continue
		}

		count := minMatches + s.rng.Intn(maxMatches-minMatches+1)
		for i := 0; i < count; i++ {
			p1, p2 := s.pair(pool)
			out = append(out, s.match(t, p1, p2, date))
		}
	}
	return out
}

// pool escolhe os jogadores elegíveis pelo nível do torneio
func (s *Synthesizer) pool(t models.Tournament) []models.Player {
	var pool []models.Player
	switch {
	case t.Level == models.LevelATPChallenger:
		pool = s.catalog.Filter(func(p models.Player) bool {
			return p.Rank > challengerMinRank && p.Age < challengerMaxAge
		})
	case t.Level == models.LevelWTA || t.Level == models.LevelWTA125 || t.Section == models.SectionWomen:
		pool = s.catalog.Named(catalog.WomenNames)
	default:
		pool = s.catalog.Filter(func(p models.Player) bool { return p.Rank <= mainTourMaxRank })
	}

	if len(pool) < minPool {
		return s.catalog.All()
	}
	return pool
}

// sorteio sem reposição de dois jogadores distintos
func (s *Synthesizer) pair(pool []models.Player) (models.Player, models.Player) {
	i := s.rng.Intn(len(pool))
	j := s.rng.Intn(len(pool) - 1)
	if j >= i {
		j++
	}
	return pool[i], pool[j]
}

func (s *Synthesizer) match(t models.Tournament, p1, p2 models.Player, date string) models.Match {
	m := models.Match{
		Tournament: t.Name,
		Level:      t.Level,
		Surface:    t.Surface,
		Location:   t.Location,
		Round:      models.Rounds[s.rng.Intn(len(models.Rounds))],
		Player1:    p1,
		Player2:    p2,
		Date:       date,
	}

	prob, err := scoring.WinProbability(p1, p2, t)
	if err != nil {
		s.log.Warn("probability fallback to neutral",
			zap.String("tournament", t.Name), zap.Error(err))
	}
	m.Player1WinProbability = prob.Player1
	m.Player2WinProbability = prob.Player2
	m.Confidence = prob.Confidence

	edge, err := s.model.EnhancedEdge(m, t)
	if err != nil {
		s.log.Warn("edge fallback to neutral",
			zap.String("tournament", t.Name), zap.Error(err))
	}
	m.Edge = edge

	return m
}
