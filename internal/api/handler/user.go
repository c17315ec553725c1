package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/playerbase/playerbase/internal/api/middleware"
	"github.com/playerbase/playerbase/internal/api/request"
	"github.com/playerbase/playerbase/internal/api/response"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/identity"
)

// UserHandler handles account endpoints
type UserHandler struct {
	identityService *identity.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(identityService *identity.Service) *UserHandler {
	return &UserHandler{
		identityService: identityService,
	}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.identityService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Get handles GET /api/v1/users/{user_id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestedUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.identityService.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Delete handles DELETE /api/v1/users/{user_id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestedUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.identityService.DeleteUser(r.Context(), userID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// requestedUserID resolves the {user_id} path variable and checks it
// against the authenticated user. A caller may only act on its own record.
func requestedUserID(r *http.Request) (model.UserID, error) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	caller := middleware.MustGetUser(r.Context())
	if caller.ID != userID {
		return "", model.ErrForbidden
	}
	return userID, nil
}
