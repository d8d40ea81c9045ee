package http

import (
	"encoding/json"
	"net/http"

	"github.com/compasshq/compass/server/internal/api/respond"
	"github.com/compasshq/compass/server/internal/api/validate"
	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/services"
)

// ThreadHandler provides HTTP transport for conversation threads.
type ThreadHandler struct {
	threads *services.ThreadService
}

func NewThreadHandler(svc *services.ThreadService) *ThreadHandler {
	return &ThreadHandler{threads: svc}
}

// CreateThread POST /api/users/{userId}/threads
func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req struct {
		Title string `json:"title,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.WriteBadRequest(w, "invalid JSON")
			return
		}
	}
	created, err := h.threads.CreateThread(r.Context(), &model.ConversationThread{UserID: userID, Title: req.Title})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListThreads GET /api/users/{userId}/threads
func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threads.ListThreads(r.Context(), pathVar(r, "userId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"threads": threads, "count": len(threads)})
}

// GetThread GET /api/users/{userId}/threads/{threadId}
func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	th, err := h.threads.GetThread(r.Context(), pathVar(r, "userId"), pathVar(r, "threadId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, th)
}

// UpdateThread PUT /api/users/{userId}/threads/{threadId}
//
// Renames the thread.
func (h *ThreadHandler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string  `json:"title"`
		Summary *string `json:"summary,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	updated, err := h.threads.UpdateThread(r.Context(), &model.ConversationThread{
		ThreadID: pathVar(r, "threadId"),
		UserID:   pathVar(r, "userId"),
		Title:    req.Title,
		Summary:  req.Summary,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

// DeleteThread DELETE /api/users/{userId}/threads/{threadId}
func (h *ThreadHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.threads.DeleteThread(r.Context(), pathVar(r, "userId"), pathVar(r, "threadId")); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages GET /api/users/{userId}/threads/{threadId}/messages
func (h *ThreadHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.threads.ListMessages(r.Context(), pathVar(r, "userId"), pathVar(r, "threadId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs, "count": len(msgs)})
}
