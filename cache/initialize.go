package cache

import (
	"os"

	"blog-service/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache opens the cache that backs session state.
// SESSION_STORE=memory keeps sessions in process instead of redis.
func InitializeCache(cfg *config.Config) cache.Cache {
	c, err := cache.New(cache.Config{
		Type:          cfg.SessionStore,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.Error(err), zap.String("type", cfg.SessionStore))
		os.Exit(1)
	}
	return c
}
