package mock

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const averageEdge = "6.2%"

// Server expõe a variante mock: dados aleatórios novos a cada requisição
type Server struct {
	Log       *zap.Logger
	Generator *Generator
	Now       func() time.Time

	OnServed func(n int) // métricas
}

func (s *Server) Router() http.Handler {
	if s.Now == nil {
		s.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/", s.home)
	r.Get("/api/predictions", s.predictions)
	r.Get("/api/health", s.health)
	return r
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":           "Tennis Betting API",
		"status":            "LIVE",
		"matches_available": s.Generator.Count(),
		"endpoints":         []string{"/api/predictions", "/api/health"},
	})
}

func (s *Server) predictions(w http.ResponseWriter, r *http.Request) {
	preds := s.Generator.Predictions()
	if s.OnServed != nil {
		s.OnServed(len(preds))
	}
	s.Log.Debug("mock predictions served", zap.Int("count", len(preds)))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"total_matches": len(preds),
		"predictions":   preds,
		"average_edge":  averageEdge,
		"last_update":   s.Now(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "tennis_data": "active"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
