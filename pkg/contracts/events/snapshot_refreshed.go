package events

import "time"

// Mensagem enviada no canal Redis "tennis_snapshot_broadcast" após cada refresh
type SnapshotRefreshed struct {
	SnapshotID        string    `json:"snapshot_id"`
	Origin            string    `json:"origin"` // "live" | "fallback"
	TotalMatches      int       `json:"total_matches"`
	TotalTournaments  int       `json:"total_tournaments"`
	ChallengerMatches int       `json:"challenger_matches"`
	ValueBets         int       `json:"value_bets"`
	AverageEdge       float64   `json:"average_edge"`
	UpdatedAt         time.Time `json:"updated_at"`
}
