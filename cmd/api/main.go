package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/offiswap/docs" // Swagger docs (generated)
	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/config"
	"github.com/redmonkez12/offiswap/internal/database"
	httpServer "github.com/redmonkez12/offiswap/internal/http"
	"github.com/redmonkez12/offiswap/internal/listing"
	"github.com/redmonkez12/offiswap/internal/logging"
	"github.com/redmonkez12/offiswap/internal/memstore"
	"github.com/redmonkez12/offiswap/internal/ratelimit"
	"github.com/redmonkez12/offiswap/internal/user"
)

// @title           OffiSwap API
// @version         1.0
// @description     Marketplace API for companies exchanging surplus office items.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5001
// @BasePath  /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
// @description Token returned by /api/auth/login.

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// stores bundles the repositories chosen by STORE
type stores struct {
	users    auth.UserRepository
	listings listing.Store
	pinger   httpServer.Pinger
	close    func() error
}

func run(migrateOnly bool) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := logging.New(logging.Config{
		Level: cfg.Log.Level,
		Dev:   cfg.Server.IsDevelopment(),
		File:  cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"store", cfg.Store,
		"token_format", cfg.Auth.TokenFormat,
	)

	ctx := context.Background()

	st, err := initStores(ctx, cfg, logger, migrateOnly)
	if err != nil {
		return err
	}
	defer st.close()

	if migrateOnly {
		logger.Info("migrations applied, exiting")
		return nil
	}

	// Initialize rate limiter
	var rateLimiter auth.RateLimiter = ratelimit.Noop{}
	if cfg.Redis.Enabled {
		redisClient, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		rateLimiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	tokenService, err := initTokenService(cfg.Auth)
	if err != nil {
		return err
	}

	// Initialize services and handlers
	authService := auth.NewService(st.users, tokenService, logger, cfg.Auth.TokenDuration)
	listingService := listing.NewService(st.listings)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:           auth.NewHandler(authService, rateLimiter),
		AuthMiddleware: auth.NewMiddleware(tokenService),
		Listing:        listing.NewHandler(listingService),
	}, st.pinger, logger)

	// Initialize HTTP server
	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func initStores(ctx context.Context, cfg *config.Config, logger *logging.Logger, migrateOnly bool) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		if migrateOnly {
			return nil, fmt.Errorf("-migrate-only requires STORE=%s", config.StorePostgres)
		}
		logger.Warn("using in-memory store, data is lost on restart")
		mem := memstore.New()
		return &stores{
			users:    mem.Users(),
			listings: mem.Listings(),
			pinger:   mem,
			close:    func() error { return nil },
		}, nil
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate || migrateOnly {
		if err := database.Migrate(ctx, db.DB); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("database migrations up to date")
	}

	return &stores{
		users:    user.NewRepository(db),
		listings: listing.NewRepository(db),
		pinger:   db,
		close:    db.Close,
	}, nil
}

func initTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatPaseto:
		svc, err := auth.NewPasetoService(cfg.PasetoKey, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PASETO service: %w", err)
		}
		return svc, nil
	default:
		svc, err := auth.NewJWTService(cfg.JWTSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		return svc, nil
	}
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
