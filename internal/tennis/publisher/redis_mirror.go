package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/pkg/contracts/events"
	ctopics "github.com/radieske/tennis-edge-api/pkg/contracts/topics"
)

// RedisMirror grava o snapshot serializado numa chave com TTL e avisa o canal pub/sub.
// A chave é só espelho para consumidores externos; o serviço nunca lê de volta.
type RedisMirror struct {
	Client  redis.Cmdable
	TTL     time.Duration
	Key     string
	Channel string
}

func NewRedisMirror(c redis.Cmdable, ttl time.Duration, channel string) *RedisMirror {
	if channel == "" {
		channel = ctopics.SnapshotBroadcast
	}
	return &RedisMirror{Client: c, TTL: ttl, Key: ctopics.SnapshotKey, Channel: channel}
}

func (r *RedisMirror) Name() string { return "redis" }

// Publish faz SET com TTL e depois PUBLISH do resumo
func (r *RedisMirror) Publish(ctx context.Context, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.Client.Set(ctx, r.Key, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.Key, err)
	}

	notice, err := json.Marshal(Refreshed(snap))
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := r.Client.Publish(ctx, r.Channel, notice).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", r.Channel, err)
	}
	return nil
}

// Refreshed monta o aviso de snapshot novo
func Refreshed(snap *models.Snapshot) events.SnapshotRefreshed {
	ev := events.SnapshotRefreshed{
		SnapshotID:        snap.ID,
		Origin:            snap.Origin,
		TotalMatches:      snap.Stats.TotalMatches,
		TotalTournaments:  snap.Stats.TotalTournaments,
		ChallengerMatches: snap.Stats.ChallengerMatches,
		ValueBets:         snap.Stats.ValueBets,
		AverageEdge:       snap.Stats.AverageEdge,
	}
	if snap.Stats.LastUpdate != nil {
		ev.UpdatedAt = *snap.Stats.LastUpdate
	}
	return ev
}
