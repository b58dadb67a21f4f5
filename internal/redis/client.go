// Package redis builds the go-redis client the repositories share and
// waits for the server to answer before the API starts serving.
package redis

import (
	"context"
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// DefaultConnectTries bounds how many pings Connect sends
const DefaultConnectTries = 8

// Options configures the client
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a client for a single instance. go-redis dials lazily,
// so no connection is made here.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:            endpoint,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClient(redisOpts), nil
}

// Connect pings the server with exponential backoff until it answers or
// maxTries pings have failed. A zero maxTries uses DefaultConnectTries.
func Connect(ctx context.Context, client Client, maxTries uint) error {
	if client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if maxTries == 0 {
		maxTries = DefaultConnectTries
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	attempt := 0
	_, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		pong, err := client.Ping(ctx).Result()
		if err != nil {
			slog.WarnContext(ctx, "redis not ready", "attempt", attempt, "error", err)
			return "", err
		}
		return pong, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "redis did not answer after %d attempts", attempt)
	}
	return nil
}
