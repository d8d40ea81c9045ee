// Package http provides the HTTP transport for the assistant and the
// domain CRUD surface.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/compasshq/compass/server/internal/api/respond"
	"github.com/compasshq/compass/server/internal/api/validate"
	"github.com/compasshq/compass/server/internal/assistant"
	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/services"
)

// ChatHandler exposes the assistant pipeline over HTTP.
type ChatHandler struct {
	dispatcher *assistant.Dispatcher
	threads    *services.ThreadService
	log        zerolog.Logger
}

func NewChatHandler(d *assistant.Dispatcher, threads *services.ThreadService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{dispatcher: d, threads: threads, log: log}
}

// Chat POST /api/users/{userId}/ai/chat
//
// Body: {"message": "...", "threadId": "optional"}. When a threadId is
// given, the exchange is persisted to that thread best-effort; persistence
// failures never block the chat response.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	var req struct {
		Message  string `json:"message"`
		ThreadID string `json:"threadId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.ChatMessage(req.Message); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp := h.dispatcher.Handle(r.Context(), userID, req.Message)

	if req.ThreadID != "" {
		h.persistExchange(r, userID, req.ThreadID, req.Message, resp)
	}

	respond.WriteJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) persistExchange(r *http.Request, userID, threadID, message string, resp assistant.Response) {
	ctx := r.Context()
	if _, err := h.threads.AppendMessage(ctx, userID, &model.ConversationMessage{
		ThreadID: threadID,
		Role:     "user",
		Content:  message,
	}); err != nil {
		h.log.Warn().Err(err).Str("thread_id", threadID).Msg("failed to persist user message")
		return
	}

	meta := map[string]interface{}{}
	if len(resp.Actions) > 0 {
		raw, err := json.Marshal(resp.Actions)
		if err == nil {
			var actions []interface{}
			if json.Unmarshal(raw, &actions) == nil {
				meta["actions"] = actions
			}
		}
	}
	if _, err := h.threads.AppendMessage(ctx, userID, &model.ConversationMessage{
		ThreadID: threadID,
		Role:     "assistant",
		Content:  resp.Message,
		Metadata: meta,
	}); err != nil {
		h.log.Warn().Err(err).Str("thread_id", threadID).Msg("failed to persist assistant message")
	}
}
