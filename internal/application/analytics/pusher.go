package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
)

// Broadcaster difunde un mensaje ya serializado a todos los clientes conectados.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// TickGate decide si esta instancia calcula el push periódico (un solo emisor entre réplicas).
type TickGate interface {
	TryAcquire(ctx context.Context, ttl time.Duration) (bool, error)
}

// SnapshotSource produce el mensaje del dashboard.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*dto.DashboardUpdateMessage, error)
}

// Pusher emite el snapshot del dashboard cada `interval` y bajo demanda (Trigger).
// Hay uno por proceso; se detiene al cancelar el contexto de Run.
type Pusher struct {
	source   SnapshotSource
	out      Broadcaster
	gate     TickGate
	interval time.Duration
	trigger  chan struct{}
	log      zerolog.Logger
}

// NewPusher construye el pusher.
func NewPusher(source SnapshotSource, out Broadcaster, interval time.Duration, log zerolog.Logger) *Pusher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Pusher{
		source:   source,
		out:      out,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		log:      log,
	}
}

// WithGate activa el lock de tick entre instancias.
func (p *Pusher) WithGate(g TickGate) *Pusher {
	p.gate = g
	return p
}

// Trigger pide un push inmediato. Nunca bloquea: si ya hay uno pendiente, se descarta.
func (p *Pusher) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run bloquea hasta que ctx se cancela.
func (p *Pusher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info().Dur("interval", p.interval).Msg("pusher: started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("pusher: shutting down")
			return
		case <-ticker.C:
			if !p.acquireTick(ctx) {
				continue
			}
			p.pushLogged(ctx)
		case <-p.trigger:
			p.pushLogged(ctx)
		}
	}
}

func (p *Pusher) acquireTick(ctx context.Context) bool {
	if p.gate == nil {
		return true
	}
	// El lock dura algo menos que el intervalo para que el siguiente tick pueda tomarlo.
	ok, err := p.gate.TryAcquire(ctx, p.interval-p.interval/10)
	if err != nil {
		p.log.Warn().Err(err).Msg("pusher: tick lock indisponible, push local")
		return true
	}
	if !ok {
		p.log.Debug().Msg("pusher: tick pris par une autre instance")
	}
	return ok
}

func (p *Pusher) pushLogged(ctx context.Context) {
	if err := p.PushOnce(ctx); err != nil && ctx.Err() == nil {
		p.log.Error().Err(err).Msg("pusher: snapshot failed")
	}
}

// PushOnce calcula el snapshot y lo difunde.
func (p *Pusher) PushOnce(ctx context.Context) error {
	msg, err := p.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal dashboard-update: %w", err)
	}
	p.out.Broadcast(payload)
	return nil
}
