package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playerbase/playerbase/internal/api/request"
	"github.com/playerbase/playerbase/internal/api/response"
	"github.com/playerbase/playerbase/internal/services/progress"
)

// ProgressHandler handles progress endpoints
type ProgressHandler struct {
	progressService *progress.Service
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *progress.Service) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// Get handles GET /api/v1/users/{user_id}/progress
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestedUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	prog, err := h.progressService.Get(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(prog))
}

// Update handles PATCH /api/v1/users/{user_id}/progress
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requestedUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ProgressUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	for _, item := range req.Items {
		if item.Name == "" {
			WriteError(w, NewInvalidRequestError("item name is required"))
			return
		}
	}

	version, prog, err := h.progressService.Update(r.Context(), userID, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressUpdate{
		UserID:   string(userID),
		Version:  version,
		Progress: response.ProgressFromModel(prog),
	})
}
