package aggregator

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/internal/tennis/scoring"
	"github.com/radieske/tennis-edge-api/internal/tennis/source"
)

const defaultSinkTimeout = 5 * time.Second

// Source devolve os torneios ativos (ao vivo ou fallback)
type Source interface {
	Fetch(ctx context.Context) source.Result
}

// Generator gera as partidas de um conjunto de torneios
type Generator interface {
	Synthesize(tournaments []models.Tournament) []models.Match
}

// Sink recebe cada snapshot novo (ws, redis, kafka). Erro não interrompe o refresh.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snap *models.Snapshot) error
}

// Aggregator guarda o snapshot atual e o recalcula sob demanda ou pelo scheduler.
// Leitores pegam o ponteiro atômico e nunca veem um snapshot pela metade.
type Aggregator struct {
	Log         *zap.Logger
	Source      Source
	Generator   Generator
	Sinks       []Sink
	SinkTimeout time.Duration
	Now         func() time.Time

	OnRefresh   func(origin string, took time.Duration, snap *models.Snapshot) // métricas
	OnFallback  func(reason string)                                            // métricas
	OnSinkError func(sink string)                                              // métricas

	current atomic.Pointer[models.Snapshot]
	mu      sync.Mutex // serializa os refreshes
}

func New(log *zap.Logger, src Source, gen Generator, sinks ...Sink) *Aggregator {
	return &Aggregator{
		Log:         log,
		Source:      src,
		Generator:   gen,
		Sinks:       sinks,
		SinkTimeout: defaultSinkTimeout,
		Now:         time.Now,
	}
}

// Current retorna o último snapshot, ou nil se nenhum refresh rodou ainda
func (a *Aggregator) Current() *models.Snapshot {
	return a.current.Load()
}

// EnsureLoaded devolve o snapshot atual, calculando na hora se o cache estiver vazio.
// Requisições concorrentes no primeiro acesso disparam um único recálculo.
// O recálculo não herda o cancelamento do ctx: um cliente que desiste não pode
// deixar a lista de fallback em cache; o timeout do Source continua valendo.
func (a *Aggregator) EnsureLoaded(ctx context.Context) *models.Snapshot {
	if snap := a.current.Load(); snap != nil {
		return snap
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if snap := a.current.Load(); snap != nil {
		return snap
	}
	a.Log.Info("cache empty, loading synchronously")
	return a.refreshLocked(context.WithoutCancel(ctx))
}

// Refresh recalcula o snapshot completo e notifica os sinks.
// Se o ctx for cancelado durante a busca, nada é gravado nem publicado e o
// snapshot anterior (ou nil) é devolvido.
func (a *Aggregator) Refresh(ctx context.Context) *models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshLocked(ctx)
}

func (a *Aggregator) refreshLocked(ctx context.Context) *models.Snapshot {
	start := time.Now()

	res := a.Source.Fetch(ctx)
	if err := ctx.Err(); err != nil {
		a.Log.Info("refresh aborted, keeping current snapshot", zap.Error(err))
		return a.current.Load()
	}
	if res.UsedFallback() && a.OnFallback != nil {
		a.OnFallback(res.Reason)
	}

	matches := a.Generator.Synthesize(res.Tournaments)
	SortByEdge(matches)

	updatedAt := a.Now()
	snap := &models.Snapshot{
		ID:             uuid.NewString(),
		Matches:        matches,
		Tournaments:    res.Tournaments,
		Stats:          ComputeStats(matches, len(res.Tournaments), updatedAt),
		Origin:         string(res.Origin),
		FallbackReason: res.Reason,
	}
	a.current.Store(snap)

	a.Log.Info("snapshot refreshed",
		zap.String("snapshot_id", snap.ID),
		zap.String("origin", snap.Origin),
		zap.Int("tournaments", snap.Stats.TotalTournaments),
		zap.Int("matches", snap.Stats.TotalMatches),
		zap.Int("value_bets", snap.Stats.ValueBets),
		zap.Float64("average_edge", snap.Stats.AverageEdge),
	)

	a.publish(ctx, snap)

	if a.OnRefresh != nil {
		a.OnRefresh(snap.Origin, time.Since(start), snap)
	}
	return snap
}

func (a *Aggregator) publish(ctx context.Context, snap *models.Snapshot) {
	for _, s := range a.Sinks {
		sctx, cancel := context.WithTimeout(ctx, a.SinkTimeout)
		err := s.Publish(sctx, snap)
		cancel()
		if err != nil {
			a.Log.Warn("sink publish failed", zap.String("sink", s.Name()), zap.Error(err))
			if a.OnSinkError != nil {
				a.OnSinkError(s.Name())
			}
		}
	}
}

// SortByEdge ordena por enhanced_edge decrescente; empates mantêm a ordem de geração
func SortByEdge(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EnhancedEdge > matches[j].EnhancedEdge
	})
}

// ComputeStats resume as partidas; a média considera só edges > 0
func ComputeStats(matches []models.Match, tournaments int, updatedAt time.Time) models.Stats {
	st := models.Stats{
		TotalMatches:     len(matches),
		TotalTournaments: tournaments,
		LastUpdate:       &updatedAt,
	}

	var sum float64
	var positive int
	for _, m := range matches {
		if m.ChallengerLevel {
			st.ChallengerMatches++
		}
		if m.IsValueBet {
			st.ValueBets++
		}
		if m.EnhancedEdge > 0 {
			sum += m.EnhancedEdge
			positive++
		}
	}
	if positive > 0 {
		st.AverageEdge = scoring.Round1(sum / float64(positive))
	}
	return st
}
