package model

import "time"

// UserID uniquely identifies a user account across the system
type UserID string

// User is the stored account record. Local accounts carry a password hash,
// federated accounts carry the external provider identity; the schema permits
// both on one record (a local account linked to a provider later).
type User struct {
	ID           UserID    `json:"user_id"`
	Username     string    `json:"username"` // unique, immutable once set
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	FederatedID  string    `json:"federated_id,omitempty"` // e.g. "vk:12345", unique when present
	CreatedAt    time.Time `json:"created_at"`
	Version      int       `json:"version"` // starts at 1, +1 per progress mutation
	Progress     Progress  `json:"progress"`
}

// Item is a named counter in a user's inventory. Names are unique within
// one record; the slice order is the insertion order.
type Item struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Progress is the game-progress sub-document embedded in a User
type Progress struct {
	PassedLevel int    `json:"passedLevel"`
	Items       []Item `json:"items"`
}

// ProgressUpdate is a partial update to a user's progress. A nil PassedLevel
// leaves the level untouched; Items entries are deltas added to the current
// amounts, not replacements.
type ProgressUpdate struct {
	PassedLevel *int   `json:"passedLevel,omitempty"`
	Items       []Item `json:"items,omitempty"`
}

// DefaultProgress returns the starting progress for a new account
func DefaultProgress() Progress {
	return Progress{
		PassedLevel: 0,
		Items: []Item{
			{Name: "shield", Amount: 1},
			{Name: "booster", Amount: 1},
		},
	}
}

// Clone returns a deep copy of the user record
func (u *User) Clone() *User {
	cp := *u
	cp.Progress = u.Progress.Clone()
	return &cp
}

// Clone returns a deep copy of the progress sub-document
func (p Progress) Clone() Progress {
	cp := p
	if p.Items != nil {
		cp.Items = make([]Item, len(p.Items))
		copy(cp.Items, p.Items)
	}
	return cp
}
