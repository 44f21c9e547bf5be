package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

const writeWait = 5 * time.Second

// client embrulha a conexão; gorilla só aceita um escritor por vez
type client struct {
	id   string
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(messageType int, b []byte) error {
	return c.writeBy(time.Now().Add(writeWait), messageType, b)
}

func (c *client) writeBy(deadline time.Time, messageType int, b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(deadline)
	return c.conn.WriteMessage(messageType, b)
}

func (c *client) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, b)
}

// Hub gerencia conexões WebSocket e assinaturas por torneio.
// subs: nome do torneio (ou "*") -> conjunto de clientes inscritos
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[*client]struct{}
}

// NewHub cria o hub com a política de origem informada (nil aceita qualquer origem)
func NewHub(allowOrigin func(r *http.Request) bool, log *zap.Logger) *Hub {
	if allowOrigin == nil {
		allowOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		subs:     make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) Name() string { return "ws" }

// HandleWS gerencia o ciclo de vida de uma conexão
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	defer conn.Close()

	h.log.Debug("ws client connected", zap.String("client_id", c.id))

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			if msg.Tournament == "" {
				_ = c.writeJSON(serverMsg{Type: "error", Error: "tournament required"})
				continue
			}
			h.subscribe(c, msg.Tournament)
			_ = c.writeJSON(serverMsg{Type: "subscribed", Tournament: msg.Tournament})
		case "unsubscribe":
			h.unsubscribe(c, msg.Tournament)
			_ = c.writeJSON(serverMsg{Type: "unsubscribed", Tournament: msg.Tournament})
		case "ping":
			_ = c.writeJSON(serverMsg{Type: "pong"})
		default:
			_ = c.writeJSON(serverMsg{Type: "error", Error: "unknown message type"})
		}
	}

	h.drop(c)
	h.log.Debug("ws client disconnected", zap.String("client_id", c.id))
}

func (h *Hub) subscribe(c *client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[*client]struct{})
	}
	h.subs[topic][c] = struct{}{}
}

func (h *Hub) unsubscribe(c *client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[topic]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, topic)
		}
	}
}

// remove o cliente de todas as assinaturas ao desconectar
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Subscribers retorna quantos clientes estão inscritos no tópico
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Publish envia a cada inscrito as partidas do seu torneio ("*" recebe todas).
// As escritas rodam em paralelo e nenhuma passa do deadline do ctx; falha em um
// cliente não impede o envio aos demais.
func (h *Hub) Publish(ctx context.Context, snap *models.Snapshot) error {
	targets := h.snapshotTargets()
	if len(targets) == 0 {
		return nil
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	byTournament := make(map[string][]models.Match)
	for _, m := range snap.Matches {
		byTournament[m.Tournament] = append(byTournament[m.Tournament], m)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	for topic, clients := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		matches := snap.Matches
		if topic != AllTournaments {
			matches = byTournament[topic]
		}
		b, err := json.Marshal(Update{
			Type:       "snapshot",
			Tournament: topic,
			SnapshotID: snap.ID,
			Origin:     snap.Origin,
			Matches:    matches,
			Stats:      snap.Stats,
		})
		if err != nil {
			return err
		}

		for _, c := range clients {
			wg.Add(1)
			go func(c *client) {
				defer wg.Done()
				if err := c.writeBy(deadline, websocket.TextMessage, b); err != nil {
					h.log.Debug("ws write failed", zap.String("client_id", c.id), zap.Error(err))
				}
			}(c)
		}
	}
	wg.Wait()
	return ctx.Err()
}

// copia as assinaturas para não segurar o lock durante as escritas
func (h *Hub) snapshotTargets() map[string][]*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string][]*client, len(h.subs))
	for topic, set := range h.subs {
		for c := range set {
			out[topic] = append(out[topic], c)
		}
	}
	return out
}
