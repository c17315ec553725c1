package credential

import (
	"golang.org/x/crypto/bcrypt"
)

// Service hashes and verifies account passwords
type Service struct {
	cost int
}

// New creates a new CredentialService. A cost of 0 uses bcrypt's default.
func New(cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{cost: cost}
}

// Hash produces a salted one-way hash of the password. The salt is
// randomized per call, so hashing the same password twice yields
// different strings.
func (s *Service) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash. bcrypt embeds the
// salt in the hash and compares in constant time.
func (s *Service) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
