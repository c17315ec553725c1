package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/playerbase/playerbase/internal/dependencies/mocks"
	"github.com/playerbase/playerbase/internal/services/identity"
	"github.com/playerbase/playerbase/internal/services/token"
	"github.com/playerbase/playerbase/internal/storage/memory"
	"golang.org/x/crypto/bcrypt"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// provider may be nil to run without federated login.
func NewTestApp(provider identity.Provider) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	tokenCfg := token.DefaultConfig()
	tokenCfg.Secret = "test-secret"
	tokenService, err := token.New(tokenCfg, mockClock)
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, mockClock, tokenService, bcrypt.MinCost, provider, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
