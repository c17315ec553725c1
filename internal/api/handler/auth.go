package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playerbase/playerbase/internal/api/request"
	"github.com/playerbase/playerbase/internal/api/response"
	"github.com/playerbase/playerbase/internal/services/identity"
)

// AuthHandler handles login endpoints
type AuthHandler struct {
	identityService *identity.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *identity.Service) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	token, err := h.identityService.LoginLocal(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewToken(token))
}

// VKLogin handles POST /api/v1/auth/vk
func (h *AuthHandler) VKLogin(w http.ResponseWriter, r *http.Request) {
	var req request.VKLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	token, err := h.identityService.LoginFederated(r.Context(), req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewToken(token))
}
