package events

import "time"

// Evento publicado no tópico "tennis_value_bets".
// Chave da mensagem: SnapshotID, para manter os eventos de um mesmo refresh juntos.
type ValueBetDetected struct {
	SnapshotID   string    `json:"snapshot_id"`
	Tournament   string    `json:"tournament"`
	Level        string    `json:"level"`
	Surface      string    `json:"surface"`
	Round        string    `json:"round"`
	Player1      string    `json:"player1"`
	Player2      string    `json:"player2"`
	Player1Prob  float64   `json:"player1_win_probability"`
	EnhancedEdge float64   `json:"enhanced_edge"`
	BetStrength  string    `json:"bet_strength"`
	DetectedAt   time.Time `json:"detected_at"`
}
