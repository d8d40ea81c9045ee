package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	httpHandlers "github.com/compasshq/compass/server/internal/api/http"
	"github.com/compasshq/compass/server/internal/api/recovery"
	"github.com/compasshq/compass/server/internal/assistant"
	"github.com/compasshq/compass/server/internal/oracle"
	"github.com/compasshq/compass/server/internal/services"
	"github.com/compasshq/compass/server/internal/store"
	"github.com/compasshq/compass/server/internal/timeparse"
)

// Deps bundles the long-lived components the router wires into handlers.
type Deps struct {
	Store        store.Store
	Oracle       oracle.Oracle
	Dates        *timeparse.Resolver
	HistoryLimit int
	DB           httpHandlers.Pinger // nil for the in-memory store
	Log          zerolog.Logger
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(deps Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	goalService := services.NewGoalService(deps.Store)
	taskService := services.NewTaskService(deps.Store)
	eventService := services.NewEventService(deps.Store)
	threadService := services.NewThreadService(deps.Store)

	dispatcher := assistant.NewDispatcher(assistant.DispatcherDeps{
		Oracle:  deps.Oracle,
		Goals:   goalService,
		Tasks:   taskService,
		Events:  eventService,
		History: assistant.NewConversationStore(deps.HistoryLimit),
		Dates:   deps.Dates,
		Log:     deps.Log,
	})

	healthHandler := httpHandlers.NewHealthHandler(deps.DB, deps.Oracle)
	chatHandler := httpHandlers.NewChatHandler(dispatcher, threadService, deps.Log)
	goalHandler := httpHandlers.NewGoalHandler(goalService)
	taskHandler := httpHandlers.NewTaskHandler(taskService)
	eventHandler := httpHandlers.NewEventHandler(eventService)
	threadHandler := httpHandlers.NewThreadHandler(threadService)
	suggestionHandler := httpHandlers.NewSuggestionHandler(deps.Oracle, goalService, deps.Log)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")
	router.HandleFunc("/api/health/ai", healthHandler.CheckAIHealth).Methods("GET")

	// Assistant endpoints
	router.HandleFunc("/api/users/{userId}/ai/chat", chatHandler.Chat).Methods("POST")
	router.HandleFunc("/api/users/{userId}/ai/suggestions", suggestionHandler.Suggest).Methods("GET")

	// Goal endpoints
	router.HandleFunc("/api/users/{userId}/goals", goalHandler.CreateGoal).Methods("POST")
	router.HandleFunc("/api/users/{userId}/goals", goalHandler.ListGoals).Methods("GET")
	router.HandleFunc("/api/users/{userId}/goals/{goalId}", goalHandler.GetGoal).Methods("GET")
	router.HandleFunc("/api/users/{userId}/goals/{goalId}", goalHandler.UpdateGoal).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/goals/{goalId}", goalHandler.DeleteGoal).Methods("DELETE")

	// Task endpoints
	router.HandleFunc("/api/users/{userId}/tasks", taskHandler.CreateTask).Methods("POST")
	router.HandleFunc("/api/users/{userId}/tasks", taskHandler.ListTasks).Methods("GET")
	router.HandleFunc("/api/users/{userId}/tasks/{taskId}", taskHandler.GetTask).Methods("GET")
	router.HandleFunc("/api/users/{userId}/tasks/{taskId}", taskHandler.UpdateTask).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")

	// Calendar event endpoints
	router.HandleFunc("/api/users/{userId}/events", eventHandler.CreateEvent).Methods("POST")
	router.HandleFunc("/api/users/{userId}/events", eventHandler.ListEvents).Methods("GET")
	router.HandleFunc("/api/users/{userId}/events/{eventId}", eventHandler.GetEvent).Methods("GET")
	router.HandleFunc("/api/users/{userId}/events/{eventId}", eventHandler.UpdateEvent).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/events/{eventId}", eventHandler.DeleteEvent).Methods("DELETE")

	// Conversation thread endpoints
	router.HandleFunc("/api/users/{userId}/threads", threadHandler.CreateThread).Methods("POST")
	router.HandleFunc("/api/users/{userId}/threads", threadHandler.ListThreads).Methods("GET")
	router.HandleFunc("/api/users/{userId}/threads/{threadId}", threadHandler.GetThread).Methods("GET")
	router.HandleFunc("/api/users/{userId}/threads/{threadId}", threadHandler.UpdateThread).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/threads/{threadId}", threadHandler.DeleteThread).Methods("DELETE")
	router.HandleFunc("/api/users/{userId}/threads/{threadId}/messages", threadHandler.ListMessages).Methods("GET")

	return router
}
