package redis

import (
	"fmt"

	"github.com/playerbase/playerbase/internal/model"
)

// Key prefix for all account data
const keyPrefix = "playerbase"

// userKey returns the Redis key for a User record
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// federatedIndexKey returns the Redis key for the federated_id -> user_id index
func federatedIndexKey(federatedID string) string {
	return fmt.Sprintf("%s:idx:federated:%s", keyPrefix, federatedID)
}
