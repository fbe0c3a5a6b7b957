package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/heraclion-api/internal/application/analytics"
)

// Channel canal pub/sub por el que viajan los snapshots entre instancias.
const Channel = "heraclion:dashboard"

// TickLockKey clave del lock del push periódico.
const TickLockKey = "heraclion:dashboard:tick"

var (
	_ analytics.Broadcaster = (*RedisRelay)(nil)
	_ analytics.TickGate    = (*RedisRelay)(nil)
)

// NewRedis crea el cliente go-redis y valida la conexión.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// RedisRelay publica los snapshots en Redis y reenvía al hub local todo lo recibido,
// de modo que cada réplica alimenta a sus propios clientes websocket.
type RedisRelay struct {
	rdb   *redis.Client
	local analytics.Broadcaster
	log   zerolog.Logger
}

// NewRedisRelay construye el relay sobre el hub local.
func NewRedisRelay(rdb *redis.Client, local analytics.Broadcaster, log zerolog.Logger) *RedisRelay {
	return &RedisRelay{rdb: rdb, local: local, log: log}
}

// Broadcast publica payload. Si Redis falla, se entrega solo en local.
func (r *RedisRelay) Broadcast(payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		r.log.Warn().Err(err).Msg("relay: publish échoué, diffusion locale")
		r.local.Broadcast(payload)
	}
}

// Run se suscribe al canal hasta que ctx se cancela. ready, si no es nil, se cierra
// cuando la suscripción está confirmada.
func (r *RedisRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}
	r.log.Info().Str("channel", Channel).Msg("relay: abonné")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.local.Broadcast([]byte(msg.Payload))
		}
	}
}

// TryAcquire toma el lock del tick con SET NX PX. Solo una instancia lo obtiene por intervalo.
func (r *RedisRelay) TryAcquire(ctx context.Context, ttl time.Duration) (bool, error) {
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	err := r.rdb.SetArgs(ctx, TickLockKey, "1", redis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
