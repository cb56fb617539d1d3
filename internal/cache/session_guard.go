package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "survey:session:"

// SessionGuard claims a submission session so concurrent or repeated posts of
// the same session are rejected before they reach the store.
type SessionGuard interface {
	// Acquire reports false when the session was already claimed.
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

type redisSessionGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSessionGuard(client *redis.Client, ttl time.Duration, logger *slog.Logger) SessionGuard {
	return &redisSessionGuard{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (g *redisSessionGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, sessionKey(sessionID), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim session %s: %w", sessionID, err)
	}
	if !ok {
		g.logger.Warn("Duplicate survey session", "session_id", sessionID)
	}
	return ok, nil
}

func (g *redisSessionGuard) Release(ctx context.Context, sessionID string) error {
	if err := g.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to release session %s: %w", sessionID, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

type noopSessionGuard struct{}

// NewNoopSessionGuard is used when no redis is configured; the store's unique
// session index remains the only duplicate check.
func NewNoopSessionGuard() SessionGuard {
	return noopSessionGuard{}
}

func (noopSessionGuard) Acquire(context.Context, string) (bool, error) { return true, nil }
func (noopSessionGuard) Release(context.Context, string) error         { return nil }
