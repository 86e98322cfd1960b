package server

import (
	"net/http"
	"os"

	"blog-service/auth"
	cachepackage "blog-service/cache"
	"blog-service/config"
	"blog-service/database"
	"blog-service/handlers"
	"blog-service/repository"
	"blog-service/session"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// noAuth backs httpserver's auth callback. Every route is registered with
// AuthType "none"; the handler pipeline resolves the session instead.
func noAuth(r *http.Request) (bool, httpserver.RequestAuth) {
	return false, httpserver.RequestAuth{}
}

func initLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

// StartServer runs the service with accounts, SQLite persistence and sessions
func StartServer() {
	initLogger()
	cfg := config.Load()

	logger.Info("Starting Blog Service...")

	dbConn := database.InitializeDatabase(cfg)
	defer dbConn.Close()

	cache := cachepackage.InitializeCache(cfg)
	defer cache.Close()

	sessions := session.NewManager(session.NewCacheStore(cache), cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	credentials := auth.NewService(repository.NewUserRepository(dbConn), cfg.BcryptCost)

	posts := handlers.NewPostHandler(repository.NewPostRepository(dbConn), true)
	accounts := handlers.NewAccountHandler(credentials, sessions)

	server := httpserver.New(cfg.Port, noAuth)
	routes := handlers.AuthenticatedRoutes(posts, accounts, sessions)
	for _, rt := range routes {
		server.Register(rt.Route, rt.Handler)
	}

	logger.Info("Blog service started", zap.String("port", cfg.Port), zap.Int("routes", len(routes)))
	logger.Info("Health check: GET /health")

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}

// StartAnonymousServer runs the single-author service over an in-memory store
func StartAnonymousServer() {
	initLogger()
	cfg := config.Load()

	logger.Info("Starting Blog Service in anonymous mode...")

	posts := handlers.NewPostHandler(repository.NewPostStore(), false)

	server := httpserver.New(cfg.Port, noAuth)
	routes := handlers.AnonymousRoutes(posts)
	for _, rt := range routes {
		server.Register(rt.Route, rt.Handler)
	}

	logger.Info("Blog service started", zap.String("port", cfg.Port), zap.Int("routes", len(routes)))
	logger.Info("Health check: GET /health")

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
