package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/playerbase/playerbase/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newUser(id model.UserID, username string) *model.User {
	return &model.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:   1,
		Progress:  model.DefaultProgress(),
	}
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := s.newUser("user-1", "alice")

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user, retrieved)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserReturnsCopy() {
	user := s.newUser("user-1", "alice")
	_ = s.storage.SaveUser(s.ctx, user)

	first, _ := s.storage.GetUser(s.ctx, "user-1")
	first.Progress.Items[0].Amount = 99

	second, _ := s.storage.GetUser(s.ctx, "user-1")
	s.Equal(1, second.Progress.Items[0].Amount)
}

func (s *StorageSuite) TestGetUserByUsername() {
	_ = s.storage.SaveUser(s.ctx, s.newUser("user-1", "alice"))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetUserByFederatedID() {
	user := s.newUser("user-1", "vk_12345")
	user.FederatedID = "vk:12345"
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByFederatedID(s.ctx, "vk:12345")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestUserExists() {
	exists, err := s.storage.UserExists(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveUser(s.ctx, s.newUser("user-1", "alice"))

	exists, err = s.storage.UserExists(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteUserClearsIndexes() {
	user := s.newUser("user-1", "alice")
	user.FederatedID = "vk:12345"
	_ = s.storage.SaveUser(s.ctx, user)

	err := s.storage.DeleteUser(s.ctx, "user-1")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByFederatedID(s.ctx, "vk:12345")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserNotFound() {
	err := s.storage.DeleteUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}
