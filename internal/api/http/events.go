package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/compasshq/compass/server/internal/api/respond"
	"github.com/compasshq/compass/server/internal/api/validate"
	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/services"
)

// EventHandler provides HTTP transport for calendar event operations.
type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(svc *services.EventService) *EventHandler {
	return &EventHandler{events: svc}
}

type eventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime,omitempty"`
}

// CreateEvent POST /api/users/{userId}/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	e := &model.CalendarEvent{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	created, err := h.events.CreateEvent(r.Context(), e)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListEvents GET /api/users/{userId}/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context(), pathVar(r, "userId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
}

// GetEvent GET /api/users/{userId}/events/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.events.GetEvent(r.Context(), pathVar(r, "userId"), pathVar(r, "eventId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

// UpdateEvent PUT /api/users/{userId}/events/{eventId}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	e := &model.CalendarEvent{
		EventID:     pathVar(r, "eventId"),
		UserID:      pathVar(r, "userId"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	updated, err := h.events.UpdateEvent(r.Context(), e)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

// DeleteEvent DELETE /api/users/{userId}/events/{eventId}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.DeleteEvent(r.Context(), pathVar(r, "userId"), pathVar(r, "eventId")); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
