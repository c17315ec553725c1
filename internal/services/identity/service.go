package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playerbase/playerbase/internal/dependencies/clock"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/credential"
	"github.com/playerbase/playerbase/internal/services/token"
	"github.com/playerbase/playerbase/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrNoProvider            = errors.New("no federated identity provider configured")
	ErrIDGenerationExhausted = errors.New("could not generate a unique user id")
)

// maxIDAttempts bounds the retry-until-unique id generation loop
const maxIDAttempts = 5

// Service orchestrates account creation, local login, and federated login
type Service struct {
	storage     storage.Storage
	credentials *credential.Service
	tokens      *token.Service
	provider    Provider // may be nil when federation is disabled
	clock       clock.Clock
	logger      *slog.Logger
}

// New creates a new IdentityService. provider may be nil if federated
// login is not configured.
func New(
	storage storage.Storage,
	credentials *credential.Service,
	tokens *token.Service,
	provider Provider,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:     storage,
		credentials: credentials,
		tokens:      tokens,
		provider:    provider,
		clock:       clk,
		logger:      logger,
	}
}

// Register creates a local account with a freshly generated user id,
// version 1, and the starting progress
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	// Check if username exists
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	userID, err := s.newUserID(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
		Version:      1,
		Progress:     model.DefaultProgress(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))
	return user, nil
}

// LoginLocal verifies a username/password pair and issues a token.
// Unknown usernames and bad passwords are indistinguishable to the caller.
func (s *Service) LoginLocal(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// Purely federated accounts have no password to verify against
	if user.PasswordHash == "" || !s.credentials.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// LoginFederated exchanges a provider authorization code for a local
// identity, creating the account on first login, and issues a token
func (s *Service) LoginFederated(ctx context.Context, code string) (string, error) {
	if s.provider == nil {
		return "", ErrNoProvider
	}

	providerToken, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	profile, err := s.provider.FetchProfile(ctx, providerToken)
	if err != nil {
		return "", err
	}

	federatedID := fmt.Sprintf("%s:%s", s.provider.Name(), profile.ExternalUserID)

	user, err := s.storage.GetUserByFederatedID(ctx, federatedID)
	if errors.Is(err, model.ErrUserNotFound) {
		user, err = s.createFederatedUser(ctx, federatedID, profile)
	}
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID)
}

// createFederatedUser provisions an account for a first-time federated
// login, with a synthetic username/email derived from the provider identity
func (s *Service) createFederatedUser(ctx context.Context, federatedID string, profile *Profile) (*model.User, error) {
	username := fmt.Sprintf("%s_%s", s.provider.Name(), profile.ExternalUserID)
	email := fmt.Sprintf("%s@%s.com", username, s.provider.Name())

	// The synthetic username can collide with an existing local account
	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	userID, err := s.newUserID(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          userID,
		Username:    username,
		Email:       email,
		FederatedID: federatedID,
		CreatedAt:   s.clock.Now(),
		Version:     1,
		Progress:    model.DefaultProgress(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("federated user created",
		slog.String("user_id", string(user.ID)),
		slog.String("provider", s.provider.Name()),
	)
	return user, nil
}

// Authenticate resolves a bearer token to its user record. Every token
// failure and a token for a since-deleted account collapse into
// ErrUnauthenticated so callers cannot distinguish the sub-cases.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// GetUser returns the user record for an id
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// DeleteUser removes the account and its index entries. Outstanding
// tokens for the account stop authenticating immediately.
func (s *Service) DeleteUser(ctx context.Context, id model.UserID) error {
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.String("user_id", string(id)))
	return nil
}

// newUserID generates a user id that is not yet present in storage,
// bounded by maxIDAttempts
func (s *Service) newUserID(ctx context.Context) (model.UserID, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := model.UserID(uuid.NewString())
		exists, err := s.storage.UserExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrIDGenerationExhausted
}
