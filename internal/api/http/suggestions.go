package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/compasshq/compass/server/internal/api/respond"
	"github.com/compasshq/compass/server/internal/api/validate"
	"github.com/compasshq/compass/server/internal/oracle"
	"github.com/compasshq/compass/server/internal/services"
)

// SuggestionHandler produces goal suggestions from the user's current
// goals. When the model is unavailable it falls back to a static list so
// the endpoint always answers.
type SuggestionHandler struct {
	oracle oracle.Oracle
	goals  *services.GoalService
	log    zerolog.Logger
}

func NewSuggestionHandler(o oracle.Oracle, goals *services.GoalService, log zerolog.Logger) *SuggestionHandler {
	return &SuggestionHandler{oracle: o, goals: goals, log: log}
}

var staticSuggestions = []string{
	"Read one book this month",
	"Exercise three times a week",
	"Learn a new skill for 20 minutes a day",
	"Plan next week every Sunday evening",
}

// Suggest GET /api/users/{userId}/ai/suggestions
func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	goals, err := h.goals.ListGoals(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	var titles []string
	for _, g := range goals {
		if !g.Completed {
			titles = append(titles, g.Title)
		}
	}

	suggestions := h.fromOracle(r, titles)
	source := "ai"
	if suggestions == nil {
		suggestions = staticSuggestions
		source = "static"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions, "source": source})
}

func (h *SuggestionHandler) fromOracle(r *http.Request, goalTitles []string) []string {
	prompt := suggestionPrompt(goalTitles)
	out, err := h.oracle.Complete(r.Context(), prompt)
	if err != nil {
		h.log.Warn().Err(err).Str("category", string(oracle.Categorize(err))).Msg("suggestion oracle call failed")
		return nil
	}

	var suggestions []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if line != "" {
			suggestions = append(suggestions, line)
		}
	}
	if len(suggestions) == 0 {
		return nil
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

func suggestionPrompt(goalTitles []string) string {
	if len(goalTitles) == 0 {
		return "Suggest 4 realistic personal goals for someone starting out with a productivity tracker. Reply with one suggestion per line, no numbering, no extra prose."
	}
	return fmt.Sprintf("A user is working on these goals: %s. Suggest 4 complementary next goals. Reply with one suggestion per line, no numbering, no extra prose.", strings.Join(goalTitles, "; "))
}
