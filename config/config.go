package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the process configuration, read from the environment
type Config struct {
	Port string

	DBDriver      string
	DBPath        string
	MigrationsDir string

	SessionSecret string
	SessionStore  string // "redis" or "memory"
	SessionTTL    time.Duration
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BcryptCost int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	return def
}

func getenvb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// Load reads an optional .env file and then the process environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getenv("PORT", "8080"),

		DBDriver:      getenv("DB_DRIVER", "sqlite3"),
		DBPath:        getenv("DB_PATH", "./blog.db"),
		MigrationsDir: getenv("MIGRATIONS_DIR", "./database/migrations"),

		// dev fallback; replace in prod
		SessionSecret: getenv("SESSION_SECRET", "replace-this-with-a-strong-secret"),
		SessionStore:  getenv("SESSION_STORE", "redis"),
		SessionTTL:    time.Duration(getenvi("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:  getenvb("COOKIE_SECURE", false),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvi("REDIS_DB", 0),

		BcryptCost: clampCost(getenvi("BCRYPT_COST", bcrypt.DefaultCost)),
	}
}

func clampCost(cost int) int {
	if cost < bcrypt.MinCost {
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}
