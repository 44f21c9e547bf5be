package metrics

import "github.com/prometheus/client_golang/prometheus"

// Tennis agrupa as métricas do agregador de partidas.
// Os callbacks do agregador (OnRefresh, OnFallback, OnSinkError) alimentam estes coletores.
type Tennis struct {
	Refreshes       *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	Fallbacks       *prometheus.CounterVec
	SinkErrors      *prometheus.CounterVec
	Matches         prometheus.Gauge
	ValueBets       prometheus.Gauge
	AverageEdge     prometheus.Gauge
}

// NewTennis cria e registra os coletores no registerer informado
// (prometheus.DefaultRegisterer em produção, um registry novo nos testes).
func NewTennis(reg prometheus.Registerer) *Tennis {
	m := &Tennis{
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tennis_snapshot_refreshes_total",
			Help: "recomputações do snapshot por origem dos torneios",
		}, []string{"origin"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tennis_snapshot_refresh_duration_seconds",
			Help:    "duração de cada recomputação (fetch + síntese + sinks)",
			Buckets: prometheus.DefBuckets,
		}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tennis_source_fallbacks_total",
			Help: "vezes que a lista fixa de torneios foi usada, por motivo",
		}, []string{"reason"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tennis_sink_errors_total",
			Help: "falhas ao publicar o snapshot por sink",
		}, []string{"sink"}),
		Matches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tennis_snapshot_matches",
			Help: "partidas no snapshot atual",
		}),
		ValueBets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tennis_snapshot_value_bets",
			Help: "value bets no snapshot atual",
		}),
		AverageEdge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tennis_snapshot_average_edge",
			Help: "edge médio (edges > 0) do snapshot atual",
		}),
	}

	reg.MustRegister(m.Refreshes, m.RefreshDuration, m.Fallbacks, m.SinkErrors, m.Matches, m.ValueBets, m.AverageEdge)
	return m
}
