package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestBcryptCostIsClamped(t *testing.T) {
	t.Setenv("BCRYPT_COST", "1")
	assert.Equal(t, bcrypt.MinCost, Load().BcryptCost)

	t.Setenv("BCRYPT_COST", "99")
	assert.Equal(t, bcrypt.MaxCost, Load().BcryptCost)

	t.Setenv("BCRYPT_COST", "not-a-number")
	assert.Equal(t, bcrypt.DefaultCost, Load().BcryptCost)
}
