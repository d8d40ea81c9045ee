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

// GoalHandler provides HTTP transport for goal operations.
type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{goals: svc}
}

type goalRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	Completed   bool       `json:"completed"`
}

// CreateGoal POST /api/users/{userId}/goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	g := &model.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Completed:   req.Completed,
	}
	created, err := h.goals.CreateGoal(r.Context(), g)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListGoals GET /api/users/{userId}/goals
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	goals, err := h.goals.ListGoals(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"goals": goals, "count": len(goals)})
}

// GetGoal GET /api/users/{userId}/goals/{goalId}
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := h.goals.GetGoal(r.Context(), pathVar(r, "userId"), pathVar(r, "goalId"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

// UpdateGoal PUT /api/users/{userId}/goals/{goalId}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	goalID := pathVar(r, "goalId")

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	g := &model.Goal{
		GoalID:      goalID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Completed:   req.Completed,
	}
	updated, err := h.goals.UpdateGoal(r.Context(), g)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

// DeleteGoal DELETE /api/users/{userId}/goals/{goalId}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goals.DeleteGoal(r.Context(), pathVar(r, "userId"), pathVar(r, "goalId")); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
