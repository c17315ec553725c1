package request

import "github.com/playerbase/playerbase/internal/model"

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for local login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VKLoginRequest is the request body for federated login
type VKLoginRequest struct {
	Code string `json:"code"`
}

// ProgressUpdateRequest is the request body for a partial progress update.
// A missing passedLevel leaves the level untouched; items are deltas.
type ProgressUpdateRequest struct {
	PassedLevel *int        `json:"passedLevel,omitempty"`
	Items       []ItemDelta `json:"items,omitempty"`
}

// ItemDelta is one named amount delta
type ItemDelta struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// ToModel converts the request to a model update
func (r ProgressUpdateRequest) ToModel() model.ProgressUpdate {
	update := model.ProgressUpdate{PassedLevel: r.PassedLevel}
	if r.Items != nil {
		update.Items = make([]model.Item, len(r.Items))
		for i, item := range r.Items {
			update.Items[i] = model.Item{Name: item.Name, Amount: item.Amount}
		}
	}
	return update
}
