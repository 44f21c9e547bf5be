package models

import "time"

// Surface é o piso da quadra; também usado como preferência do jogador
type Surface string

const (
	SurfaceHard  Surface = "Hard"
	SurfaceClay  Surface = "Clay"
	SurfaceGrass Surface = "Grass"
)

// Level é o circuito do torneio
type Level string

const (
	LevelATP           Level = "ATP"
	LevelATPChallenger Level = "ATP Challenger"
	LevelWTA           Level = "WTA"
	LevelWTA125        Level = "WTA 125"
)

// Seções da tabela "current-events", na ordem em que aparecem na página
const (
	SectionWomen      = "Women's Tour"
	SectionMen        = "Men's Tour"
	SectionChallenger = "Challenger Tour"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Round string

var Rounds = []Round{"R32", "R16", "QF", "SF", "F"}

// BetStrength é a faixa do edge
type BetStrength string

const (
	StrengthLow      BetStrength = "Low"
	StrengthMedium   BetStrength = "Medium"
	StrengthHigh     BetStrength = "High"
	StrengthVeryHigh BetStrength = "Very High"
)

// Player representa um jogador do catálogo fixo
type Player struct {
	Name              string  `json:"name"`
	Rank              int     `json:"rank"`
	Country           string  `json:"country"`
	Age               int     `json:"age"`
	SurfacePreference Surface `json:"surface_preference"`
}

// Favorite é o favorito ao título informado pela página de origem (probabilidade em %)
type Favorite struct {
	Player      string  `json:"player"`
	Probability float64 `json:"probability"`
}

type Tournament struct {
	Name     string    `json:"name"`
	Level    Level     `json:"level"`
	Surface  Surface   `json:"surface"`
	Location string    `json:"location"`
	Section  string    `json:"section"`
	Favorite *Favorite `json:"favorite,omitempty"`
	Status   Status    `json:"status"`
}

// Edge é o resultado do modelo de edge para uma partida
type Edge struct {
	EnhancedEdge      float64     `json:"enhanced_edge"`
	LevelMultiplier   float64     `json:"level_multiplier"`
	RankMultiplier    float64     `json:"rank_multiplier"`
	SurfaceMultiplier float64     `json:"surface_multiplier"`
	ChallengerLevel   bool        `json:"challenger_level"`
	IsValueBet        bool        `json:"is_value_bet"`
	BetStrength       BetStrength `json:"bet_strength"`
}

// Match é uma partida sintética; não é alterada depois de criada
type Match struct {
	Tournament string  `json:"tournament"`
	Level      Level   `json:"level"`
	Surface    Surface `json:"surface"`
	Location   string  `json:"location"`
	Round      Round   `json:"round"`
	Player1    Player  `json:"player1"`
	Player2    Player  `json:"player2"`

	Player1WinProbability float64 `json:"player1_win_probability"`
	Player2WinProbability float64 `json:"player2_win_probability"`
	Confidence            float64 `json:"confidence"`

	Edge

	Date string `json:"date"` // YYYY-MM-DD
}

// Stats resume o snapshot atual
type Stats struct {
	TotalMatches      int        `json:"total_matches"`
	TotalTournaments  int        `json:"total_tournaments"`
	ChallengerMatches int        `json:"challenger_matches"`
	ValueBets         int        `json:"value_bets"`
	AverageEdge       float64    `json:"average_edge"`
	LastUpdate        *time.Time `json:"last_update"`
}

// Snapshot é o conjunto completo de torneios/partidas/estatísticas em cache.
// É substituído inteiro a cada refresh; nunca é alterado depois de publicado.
type Snapshot struct {
	ID             string       `json:"id"`
	Matches        []Match      `json:"matches"` // ordem decrescente de enhanced_edge
	Tournaments    []Tournament `json:"tournaments"`
	Stats          Stats        `json:"stats"`
	Origin         string       `json:"origin"` // "live" | "fallback"
	FallbackReason string       `json:"fallback_reason,omitempty"`
}
