package httpapi

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/internal/tennis/scoring"
)

const (
	apiVersion     = "1.0"
	maxPredictions = 15
	apiConnection  = "tennis_abstract"
)

type homeResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type healthResponse struct {
	Status               string     `json:"status"`
	APIConnection        string     `json:"api_connection"`
	DataSource           string     `json:"data_source"` // live | fallback | none
	MatchesAvailable     int        `json:"matches_available"`
	TournamentsAvailable int        `json:"tournaments_available"`
	ChallengerMatches    int        `json:"challenger_matches"`
	ValueBets            int        `json:"value_bets"`
	AverageEdge          string     `json:"average_edge"`
	LastUpdate           *time.Time `json:"last_update"`
	Timestamp            time.Time  `json:"timestamp"`
	ModelLoaded          bool       `json:"model_loaded"`
}

// Prediction é a partida no formato da API: probabilidades e confiança em %
type Prediction struct {
	Tournament            string         `json:"tournament"`
	Level                 models.Level   `json:"level"`
	Surface               models.Surface `json:"surface"`
	Location              string         `json:"location"`
	Round                 models.Round   `json:"round"`
	Player1               models.Player  `json:"player1"`
	Player2               models.Player  `json:"player2"`
	Player1WinProbability float64        `json:"player1_win_probability"`
	Player2WinProbability float64        `json:"player2_win_probability"`
	Confidence            float64        `json:"confidence"`

	models.Edge

	Date string `json:"date"`
}

type predictionsResponse struct {
	Matches        []Prediction `json:"matches"`
	TotalAvailable int          `json:"total_available"`
	ValueBetsFound int          `json:"value_bets_found"`
	Timestamp      time.Time    `json:"timestamp"`
}

type tournamentsResponse struct {
	Tournaments []models.Tournament `json:"tournaments"`
	Count       int                 `json:"count"`
	Timestamp   time.Time           `json:"timestamp"`
}

type playersResponse struct {
	Players   []models.Player `json:"players"`
	Count     int             `json:"count"`
	Timestamp time.Time       `json:"timestamp"`
}

func (a *API) home(w http.ResponseWriter, r *http.Request) {
	endpoints := []string{
		"/api/health",
		"/api/predictions",
		"/api/daily-predictions",
		"/api/tournaments",
		"/api/players",
	}
	if a.WS != nil {
		endpoints = append(endpoints, "/ws")
	}
	writeJSON(w, http.StatusOK, homeResponse{
		Message:   "Complete Tennis Betting System API",
		Version:   apiVersion,
		Endpoints: endpoints,
	})
}

// health usa só o snapshot em cache; nunca dispara recálculo
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "healthy",
		APIConnection: apiConnection,
		DataSource:    "none",
		AverageEdge:   Percent(0),
		Timestamp:     a.Now(),
		ModelLoaded:   true,
	}

	if snap := a.Snapshots.Current(); snap != nil {
		resp.DataSource = snap.Origin
		resp.MatchesAvailable = snap.Stats.TotalMatches
		resp.TournamentsAvailable = snap.Stats.TotalTournaments
		resp.ChallengerMatches = snap.Stats.ChallengerMatches
		resp.ValueBets = snap.Stats.ValueBets
		resp.AverageEdge = Percent(snap.Stats.AverageEdge)
		resp.LastUpdate = snap.Stats.LastUpdate
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) predictions(w http.ResponseWriter, r *http.Request) {
	snap := a.Snapshots.EnsureLoaded(r.Context())

	top := snap.Matches
	if len(top) > maxPredictions {
		top = top[:maxPredictions]
	}

	out := make([]Prediction, 0, len(top))
	for _, m := range top {
		out = append(out, ToPrediction(m))
	}

	writeJSON(w, http.StatusOK, predictionsResponse{
		Matches:        out,
		TotalAvailable: len(snap.Matches),
		ValueBetsFound: snap.Stats.ValueBets,
		Timestamp:      a.Now(),
	})
}

func (a *API) tournaments(w http.ResponseWriter, r *http.Request) {
	snap := a.Snapshots.EnsureLoaded(r.Context())

	ts := snap.Tournaments
	if ts == nil {
		ts = []models.Tournament{}
	}
	writeJSON(w, http.StatusOK, tournamentsResponse{
		Tournaments: ts,
		Count:       len(ts),
		Timestamp:   a.Now(),
	})
}

func (a *API) players(w http.ResponseWriter, r *http.Request) {
	players := a.Catalog.SortedByRank()
	writeJSON(w, http.StatusOK, playersResponse{
		Players:   players,
		Count:     len(players),
		Timestamp: a.Now(),
	})
}

// ToPrediction converte probabilidades [0,1] em percentuais com uma casa decimal
func ToPrediction(m models.Match) Prediction {
	return Prediction{
		Tournament:            m.Tournament,
		Level:                 m.Level,
		Surface:               m.Surface,
		Location:              m.Location,
		Round:                 m.Round,
		Player1:               m.Player1,
		Player2:               m.Player2,
		Player1WinProbability: scoring.Round1(m.Player1WinProbability * 100),
		Player2WinProbability: scoring.Round1(m.Player2WinProbability * 100),
		Confidence:            scoring.Round1(m.Confidence * 100),
		Edge:                  m.Edge,
		Date:                  m.Date,
	}
}

// Percent formata "x.y%"
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}
