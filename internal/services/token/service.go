package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playerbase/playerbase/internal/dependencies/clock"
	"github.com/playerbase/playerbase/internal/model"
)

// Errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// HMAC signing methods accepted for the configured algorithm
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Config holds configuration for the token service
type Config struct {
	// Secret is the HMAC signing secret. Rotating it invalidates all
	// outstanding tokens.
	Secret string
	// Algorithm selects the HMAC variant (HS256, HS384, HS512)
	Algorithm string
	// TTL is the validity duration of issued tokens
	TTL time.Duration
}

// DefaultConfig returns default token configuration (secret must be set)
func DefaultConfig() Config {
	return Config{
		Algorithm: "HS256",
		TTL:       30 * time.Minute,
	}
}

// Service issues and verifies signed bearer tokens
type Service struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	clock  clock.Clock
}

// New creates a new TokenService
func New(cfg Config, clk clock.Clock) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultConfig().Algorithm
	}
	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	return &Service{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		clock:  clk,
	}, nil
}

// Issue produces a signed token for the user, valid for the configured TTL
func (s *Service) Issue(userID model.UserID) (string, error) {
	now := s.clock.Now()

	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the subject.
// Expiry is reported as ErrTokenExpired; every other failure (bad
// signature, malformed token, missing subject) is ErrTokenInvalid.
func (s *Service) Verify(tokenString string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return model.UserID(claims.Subject), nil
}
