package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/catalog"
	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

// Snapshots é o que a API precisa do agregador
type Snapshots interface {
	Current() *models.Snapshot
	EnsureLoaded(ctx context.Context) *models.Snapshot
}

// API expõe os endpoints REST de previsões de tênis.
// Lê sempre o snapshot atual; só bloqueia quando o cache nunca foi carregado.
type API struct {
	Log       *zap.Logger
	Snapshots Snapshots
	Catalog   *catalog.Catalog
	WS        http.HandlerFunc // opcional; nil não registra /ws
	Now       func() time.Time
}

// Router retorna o roteador HTTP com middlewares e rotas
func (a *API) Router() http.Handler {
	if a.Now == nil {
		a.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(a.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", a.home)
	r.Get("/api/health", a.health)
	r.Get("/api/predictions", a.predictions)
	r.Get("/api/daily-predictions", a.predictions)
	r.Get("/api/tournaments", a.tournaments)
	r.Get("/api/players", a.players)
	if a.WS != nil {
		r.Get("/ws", a.WS)
	}
	return r
}

// RequestLogger registra cada requisição no zap (método, rota, status, latência)
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
