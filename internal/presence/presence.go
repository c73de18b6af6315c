package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Monitor tracks which viewers currently hold a live client connection.
// Clients renew their key with heartbeats; a key that lapses means the
// connection dropped. The guard never reads this; only the shell does.
type Monitor struct {
	redisdb *redis.Client
	ttl     time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func New(cfg Config) *Monitor {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Monitor{redisdb: redisdb, ttl: ttl}
}

// Heartbeat marks the viewer connected for another TTL window.
func (m *Monitor) Heartbeat(ctx context.Context, userID string) error {
	return m.redisdb.Set(ctx, presenceKey(userID), "1", m.ttl).Err()
}

// IsConnected reports whether the viewer has a live, unexpired heartbeat.
func (m *Monitor) IsConnected(ctx context.Context, userID string) (bool, error) {
	n, err := m.redisdb.Exists(ctx, presenceKey(userID)).Result()

	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Disconnect drops the heartbeat eagerly, e.g. on logout.
func (m *Monitor) Disconnect(ctx context.Context, userID string) error {
	return m.redisdb.Del(ctx, presenceKey(userID)).Err()
}

// this ping function checks redis connectivity

func (m *Monitor) Ping(ctx context.Context) error {
	return m.redisdb.Ping(ctx).Err()
}

// this closes the client

func (m *Monitor) Close() error {
	return m.redisdb.Close()
}

func presenceKey(userID string) string {
	return "presence:" + userID
}
