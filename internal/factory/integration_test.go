package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/identity"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(nil)
	s.ctx = context.Background()
}

// Test: full account lifecycle from registration to deletion
func (s *IntegrationSuite) TestAccountLifecycle() {
	// Step 1: Register
	user, err := s.app.IdentityService.Register(s.ctx, "alice", "alice@example.com", "hunter2")
	s.Require().NoError(err)
	s.Equal(1, user.Version)
	s.Equal(0, user.Progress.PassedLevel)

	// Step 2: Login
	accessToken, err := s.app.IdentityService.LoginLocal(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	// Step 3: Authenticate with the issued token
	authed, err := s.app.IdentityService.Authenticate(s.ctx, accessToken)
	s.Require().NoError(err)
	s.Equal(user.ID, authed.ID)

	// Step 4: Update progress a few times
	version, _, err := s.app.ProgressService.Update(s.ctx, user.ID, model.ProgressUpdate{
		PassedLevel: intPtr(1),
		Items:       []model.Item{{Name: "shield", Amount: 2}},
	})
	s.Require().NoError(err)
	s.Equal(2, version)

	version, progress, err := s.app.ProgressService.Update(s.ctx, user.ID, model.ProgressUpdate{
		Items: []model.Item{{Name: "booster", Amount: -1}},
	})
	s.Require().NoError(err)
	s.Equal(3, version)
	s.Equal(1, progress.PassedLevel)
	s.Equal([]model.Item{{Name: "shield", Amount: 3}}, progress.Items)

	// Step 5: Delete the account
	err = s.app.IdentityService.DeleteUser(s.ctx, user.ID)
	s.Require().NoError(err)

	// Step 6: The token no longer authenticates
	_, err = s.app.IdentityService.Authenticate(s.ctx, accessToken)
	s.ErrorIs(err, identity.ErrUnauthenticated)

	// Step 7: The username is free again
	_, err = s.app.IdentityService.Register(s.ctx, "alice", "alice2@example.com", "hunter2")
	s.Require().NoError(err)
}

// Test: tokens expire relative to the injected clock
func (s *IntegrationSuite) TestTokenExpiryAcrossServices() {
	_, err := s.app.IdentityService.Register(s.ctx, "bob", "bob@example.com", "pw")
	s.Require().NoError(err)

	accessToken, err := s.app.IdentityService.LoginLocal(s.ctx, "bob", "pw")
	s.Require().NoError(err)

	s.app.MockClock.Advance(31 * time.Minute)

	_, err = s.app.IdentityService.Authenticate(s.ctx, accessToken)
	s.ErrorIs(err, identity.ErrUnauthenticated)
}

// Test: progress survives re-login
func (s *IntegrationSuite) TestProgressPersistsAcrossSessions() {
	user, err := s.app.IdentityService.Register(s.ctx, "carol", "carol@example.com", "pw")
	s.Require().NoError(err)

	_, _, err = s.app.ProgressService.Update(s.ctx, user.ID, model.ProgressUpdate{PassedLevel: intPtr(7)})
	s.Require().NoError(err)

	accessToken, err := s.app.IdentityService.LoginLocal(s.ctx, "carol", "pw")
	s.Require().NoError(err)
	authed, err := s.app.IdentityService.Authenticate(s.ctx, accessToken)
	s.Require().NoError(err)

	progress, err := s.app.ProgressService.Get(s.ctx, authed.ID)
	s.Require().NoError(err)
	s.Equal(7, progress.PassedLevel)
}

func intPtr(v int) *int { return &v }
