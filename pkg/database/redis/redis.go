package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"youthBanking/pkg/config"
	"youthBanking/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Options builds the client options for the session store. Managed redis
// instances usually require TLS, so the server name is taken from the host.
func Options(cfg config.RedisConfig) *redis.Options {
	poolSize := cfg.RedisPoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	opts := &redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     poolSize,
		MinIdleConns: poolSize / 2,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{
			ServerName: cfg.RedisHost,
			MinVersion: tls.VersionTLS12,
		}
	}

	return opts
}

// NewRedisClient connects to the session store and fails fast when it is
// unreachable.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s (db %d): %w", client.Options().Addr, cfg.Redis.RedisDB, err)
	}

	logger.Info("redis connected", "addr", client.Options().Addr, "db", cfg.Redis.RedisDB, "tls", cfg.Redis.RedisTLS)

	return client, nil
}

func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}

	return client.Close()
}
