package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
	pkgredis "github.com/chative-support-desk/server/pkg/redis"
)

// NewSessionStore builds the store selected by cfg.Store. The returned
// closer releases the Redis client, if any.
func NewSessionStore(ctx context.Context, cfg model.SessionConfig, redisCfg pkgredis.Config) (model.SessionStore, func() error, error) {
	switch strings.ToLower(cfg.Store) {
	case "", "memory":
		logx.Info().Msg("Sessions kept in memory")
		return NewMemorySessionStore(), func() error { return nil }, nil
	case "redis":
		rdb, err := redisCfg.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		logx.Info().Dur("ttl", cfg.TTL).Msg("Sessions kept in Redis")
		return NewRedisSessionStore(rdb, cfg.TTL), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
