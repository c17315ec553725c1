package response

import (
	"time"

	"github.com/playerbase/playerbase/internal/model"
)

// User represents an account in API responses. The password hash and
// federated identity never leave the service.
type User struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"version"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		UserID:    string(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Version:   u.Version,
	}
}

// Token is the response for login endpoints
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewToken creates a bearer Token response
func NewToken(accessToken string) Token {
	return Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}
}

// Item is a named counter in progress responses
type Item struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Progress represents the progress sub-document in API responses
type Progress struct {
	PassedLevel int    `json:"passedLevel"`
	Items       []Item `json:"items"`
}

// ProgressFromModel converts model.Progress to a response Progress
func ProgressFromModel(p *model.Progress) Progress {
	items := make([]Item, len(p.Items))
	for i, item := range p.Items {
		items[i] = Item{Name: item.Name, Amount: item.Amount}
	}
	return Progress{
		PassedLevel: p.PassedLevel,
		Items:       items,
	}
}

// ProgressUpdate is the response after applying a progress update
type ProgressUpdate struct {
	UserID   string   `json:"user_id"`
	Version  int      `json:"version"`
	Progress Progress `json:"progress"`
}
