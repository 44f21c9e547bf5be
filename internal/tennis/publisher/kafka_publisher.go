package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/pkg/contracts/events"
)

// messageWriter é o subconjunto do *kafka.Writer usado aqui (facilita o fake nos testes)
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emite um ValueBetDetected por value bet de cada snapshot.
// A chave da mensagem é o ID do snapshot, mantendo os eventos de um refresh na mesma partição.
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.Logger
	now    func() time.Time
}

func NewKafkaPublisher(w messageWriter, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log, now: time.Now}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

// Publish envia todas as mensagens num único batch; snapshot sem value bets não gera escrita
func (p *KafkaPublisher) Publish(ctx context.Context, snap *models.Snapshot) error {
	detectedAt := p.now()

	var msgs []kafka.Message
	for _, m := range snap.Matches {
		if !m.IsValueBet {
			continue
		}
		value, err := json.Marshal(ValueBet(snap.ID, m, detectedAt))
		if err != nil {
			return fmt.Errorf("marshal value bet: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(snap.ID),
			Value: value,
			Time:  detectedAt,
		})
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d value bets: %w", len(msgs), err)
	}

	p.log.Debug("published value bets",
		zap.String("snapshot_id", snap.ID),
		zap.Int("count", len(msgs)),
	)
	return nil
}

// Close finaliza o writer e libera recursos associados
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ValueBet converte uma partida no evento publicado
func ValueBet(snapshotID string, m models.Match, at time.Time) events.ValueBetDetected {
	return events.ValueBetDetected{
		SnapshotID:   snapshotID,
		Tournament:   m.Tournament,
		Level:        string(m.Level),
		Surface:      string(m.Surface),
		Round:        string(m.Round),
		Player1:      m.Player1.Name,
		Player2:      m.Player2.Name,
		Player1Prob:  m.Player1WinProbability,
		EnhancedEdge: m.EnhancedEdge,
		BetStrength:  string(m.BetStrength),
		DetectedAt:   at,
	}
}
