package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/heraclion-api/internal/application/analytics"
)

var _ analytics.Broadcaster = (*Hub)(nil)

// TextMessage es el opcode websocket de los frames de texto (RFC 6455).
const TextMessage = 1

// sendBuffer mensajes pendientes por cliente antes de descartar.
const sendBuffer = 16

// Conn es la parte de una conexión websocket que usa el hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type client struct {
	id   string
	conn Conn
	send chan []byte
}

// Hub mantiene los clientes del dashboard en tiempo real y difunde los snapshots.
// Un cliente lento pierde mensajes en lugar de frenar al resto.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     zerolog.Logger
}

// NewHub construye un hub vacío.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{clients: make(map[string]*client), log: log}
}

// Len número de clientes conectados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encola payload para todos los clientes. No bloquea.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Warn().Str("client", c.id).Msg("hub: file pleine, message ignoré")
		}
	}
}

// Serve registra conn y bloquea hasta que el cliente se desconecta.
// initial, si no es nil, se envía antes que cualquier broadcast.
func (h *Hub) Serve(conn Conn, initial []byte) {
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	if initial != nil {
		c.send <- initial
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Info().Str("client", c.id).Int("clients", h.Len()).Msg("hub: client connecté")

	done := make(chan struct{})
	go h.writeLoop(c, done)

	// Los mensajes entrantes se ignoran; la lectura solo detecta el cierre.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	close(done)
	_ = conn.Close()
	h.log.Info().Str("client", c.id).Msg("hub: client déconnecté")
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(TextMessage, msg); err != nil {
				h.log.Debug().Err(err).Str("client", c.id).Msg("hub: écriture échouée")
				_ = c.conn.Close()
				return
			}
		}
	}
}
