package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/heraclion-api/internal/application/analytics"
	"github.com/jhoicas/heraclion-api/internal/infrastructure/realtime"
)

// WSHandler canal /ws del dashboard en tiempo real. El cliente solo escucha.
type WSHandler struct {
	hub      *realtime.Hub
	snapshot appanalytics.SnapshotSource
	log      zerolog.Logger
}

// NewWSHandler construye el handler. snapshot puede ser nil (sin mensaje inicial).
func NewWSHandler(hub *realtime.Hub, snapshot appanalytics.SnapshotSource, log zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, snapshot: snapshot, log: log}
}

// Upgrade rechaza con 426 las peticiones que no son un handshake websocket.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve GET /ws
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.hub.Serve(conn, h.initialMessage())
	})
}

// initialMessage envía el estado actual al conectarse, sin esperar al próximo tick.
func (h *WSHandler) initialMessage() []byte {
	if h.snapshot == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg, err := h.snapshot.Snapshot(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws: snapshot initial indisponible")
		return nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return payload
}
