package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rpswager/rpswager/internal/dependencies/clock"
	"github.com/rpswager/rpswager/internal/dependencies/random"
	"github.com/rpswager/rpswager/internal/ledger"
	ledgermemory "github.com/rpswager/rpswager/internal/ledger/memory"
	ledgerredis "github.com/rpswager/rpswager/internal/ledger/redis"
	"github.com/rpswager/rpswager/internal/services/auth"
	"github.com/rpswager/rpswager/internal/services/match"
	"github.com/rpswager/rpswager/internal/services/settlement"
	"github.com/rpswager/rpswager/internal/storage"
	"github.com/rpswager/rpswager/internal/storage/memory"
	redisstorage "github.com/rpswager/rpswager/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Persistence and custody
	Storage storage.Storage
	Ledger  ledger.Ledger

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	SettlementService *settlement.Service
	MatchController   *match.Controller
	AuthService       *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// MatchConfig holds match engine policy (house account, wager rules)
	// If zero value, defaults to match.DefaultConfig()
	MatchConfig match.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the backend for both storage and the custody
	// ledger ("memory" or "redis"). If empty, defaults to "memory".
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	var custody ledger.Ledger

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
		custody = ledgermemory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore

		// Ledger shares a connection pool with storage
		opts, err := redis.ParseURL(cfg.RedisConfig.URL)
		if err != nil {
			return nil, err
		}
		opts.PoolSize = cfg.RedisConfig.PoolSize
		opts.MinIdleConns = cfg.RedisConfig.MinIdleConns
		custody = ledgerredis.NewWithClient(redis.NewClient(opts))
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	matchCfg := cfg.MatchConfig
	if matchCfg.HouseAccount == "" {
		matchCfg = match.DefaultConfig()
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, custody, clk, rnd, matchCfg, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	custody ledger.Ledger,
	clk clock.Clock,
	rnd random.Random,
	matchCfg match.Config,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	settlementService := settlement.New()
	matchController := match.NewController(store, custody, settlementService, clk, rnd, matchCfg, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:           store,
		Ledger:            custody,
		Clock:             clk,
		Random:            rnd,
		SettlementService: settlementService,
		MatchController:   matchController,
		AuthService:       authService,
	}
}
