// Package redis limitador de intentos de login sobre Redis (ventana fija).
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/factory-api/internal/application/auth"
)

const keyNamespace = "factory:rate_limit"

var _ auth.Limiter = (*LoginLimiter)(nil)

// NewClient crea el cliente desde REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// LoginLimiter permite hasta limit intentos por clave en cada ventana.
type LoginLimiter struct {
	client goredis.Cmdable
	limit  int64
	window time.Duration
}

// NewLoginLimiter construye el limitador.
func NewLoginLimiter(client goredis.Cmdable, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow incrementa el contador de la clave; el TTL se fija en el primer incremento.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.incrWithTTL(ctx, keyNamespace+":"+key)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

func (l *LoginLimiter) incrWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 && l.window > 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return count, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count, nil
}
