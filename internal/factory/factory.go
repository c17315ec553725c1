package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/playerbase/playerbase/internal/config"
	"github.com/playerbase/playerbase/internal/dependencies/clock"
	"github.com/playerbase/playerbase/internal/services/credential"
	"github.com/playerbase/playerbase/internal/services/identity"
	"github.com/playerbase/playerbase/internal/services/progress"
	"github.com/playerbase/playerbase/internal/services/token"
	"github.com/playerbase/playerbase/internal/storage"
	"github.com/playerbase/playerbase/internal/storage/memory"
	redisstorage "github.com/playerbase/playerbase/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	CredentialService *credential.Service
	TokenService      *token.Service
	IdentityService   *identity.Service
	ProgressService   *progress.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// TokenConfig holds token signing settings (optional)
	// If zero value, defaults to token.DefaultConfig() with TokenConfig.Secret required
	TokenConfig token.Config
	// CredentialCost is the bcrypt cost for password hashing (optional)
	// If zero, the bcrypt default cost is used
	CredentialCost int
	// Provider is the federated login provider (optional)
	// If nil, federated login is disabled
	Provider identity.Provider
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()

	tokenService, err := token.New(cfg.TokenConfig, clk)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clk, tokenService, cfg.CredentialCost, cfg.Provider, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	tokenService *token.Service,
	credentialCost int,
	provider identity.Provider,
	logger *slog.Logger,
) *App {
	// Create services
	credentialService := credential.New(credentialCost)
	identityService := identity.New(store, credentialService, tokenService, provider, clk, logger)
	progressService := progress.New(store, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		CredentialService: credentialService,
		TokenService:      tokenService,
		IdentityService:   identityService,
		ProgressService:   progressService,
	}
}
