package ws

import "github.com/radieske/tennis-edge-api/internal/tennis/models"

// Tópico curinga: recebe as partidas de todos os torneios
const AllTournaments = "*"

// ClientMsg é a mensagem recebida do cliente
// Type: subscribe | unsubscribe | ping
type ClientMsg struct {
	Type       string `json:"type"`
	Tournament string `json:"tournament"` // nome do torneio ou "*"; requerido em subscribe/unsubscribe
}

// Update é enviado aos inscritos a cada refresh do snapshot
type Update struct {
	Type       string         `json:"type"` // "snapshot"
	Tournament string         `json:"tournament"`
	SnapshotID string         `json:"snapshot_id"`
	Origin     string         `json:"origin"`
	Matches    []models.Match `json:"matches"`
	Stats      models.Stats   `json:"stats"`
}

type serverMsg struct {
	Type       string `json:"type"`
	Tournament string `json:"tournament,omitempty"`
	Error      string `json:"error,omitempty"`
}
