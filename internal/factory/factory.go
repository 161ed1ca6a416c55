// Package factory wires the application's components together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gamearcade/matchserv/internal/accounts"
	"github.com/gamearcade/matchserv/internal/dependencies/clock"
	"github.com/gamearcade/matchserv/internal/dependencies/random"
	"github.com/gamearcade/matchserv/internal/game"
	"github.com/gamearcade/matchserv/internal/matchmaking"
	"github.com/gamearcade/matchserv/internal/server"
	"github.com/gamearcade/matchserv/internal/store"
	filestore "github.com/gamearcade/matchserv/internal/store/file"
	"github.com/gamearcade/matchserv/internal/store/memory"
	redisstore "github.com/gamearcade/matchserv/internal/store/redis"
	"github.com/gamearcade/matchserv/internal/transport"
	"github.com/gamearcade/matchserv/internal/transport/ws"
)

// Store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeFile   = "file"
	StoreTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Store store.AccountStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Accounts  *accounts.Directory
	Queue     *matchmaking.Queue
	Rooms     *game.Manager
	Server    *server.Server
	Transport *ws.Transport
}

// Config holds configuration for the application factory
type Config struct {
	// StoreType selects the account store backend ("memory", "file" or
	// "redis"). If empty, defaults to "memory".
	StoreType string
	// AccountFile is the path to the account file (required for "file")
	AccountFile string
	// RedisConfig holds Redis connection settings (required for "redis")
	RedisConfig *redisstore.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeMemory
	}

	var accountStore store.AccountStore
	switch storeType {
	case StoreTypeMemory:
		accountStore = memory.New()
	case StoreTypeFile:
		if cfg.AccountFile == "" {
			return nil, errors.New("AccountFile required when StoreType is file")
		}
		accountStore = filestore.New(cfg.AccountFile)
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		accountStore = redisStore
	default:
		return nil, errors.New("invalid StoreType: must be 'memory', 'file' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(accountStore, clk, rnd, logger)

	events := make(chan transport.Event, server.EventBuffer)
	app.Transport = ws.New(events, logger)
	app.Server = server.New(events, app.Accounts, app.Queue, app.Rooms, app.Transport, clk, logger)

	return app, nil
}

// newWithDependencies wires the core components over the given dependencies
// (useful for testing)
func newWithDependencies(accountStore store.AccountStore, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Store:    accountStore,
		Clock:    clk,
		Random:   rnd,
		Accounts: accounts.New(accountStore, logger),
		Queue:    matchmaking.New(),
		Rooms:    game.NewManager(clk, rnd, logger),
	}
}
