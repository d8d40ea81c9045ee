package model

import "time"

// Goal is a long-term objective with an optional target date.
type Goal struct {
	GoalID       string     `json:"goalId"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Category     *string    `json:"category,omitempty"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Completed    bool       `json:"completed"`
	CreationTime time.Time  `json:"creationTime"`
}

// Task is a short-term item, optionally linked to a goal.
type Task struct {
	TaskID       string     `json:"taskId"`
	UserID       string     `json:"userId"`
	GoalID       *string    `json:"goalId,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Priority     string     `json:"priority"`
	Completed    bool       `json:"completed"`
	CreationTime time.Time  `json:"creationTime"`
}

// CalendarEvent is a scheduled block of time on the user's calendar.
type CalendarEvent struct {
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	CreationTime time.Time `json:"creationTime"`
}

// ConversationThread groups persisted chat exchanges for a user.
type ConversationThread struct {
	ThreadID     string    `json:"threadId"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Summary      *string   `json:"summary,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// ConversationMessage is one persisted exchange entry within a thread.
// Metadata carries structured action records for assistant replies.
type ConversationMessage struct {
	MessageID    string                 `json:"messageId"`
	ThreadID     string                 `json:"threadId"`
	Role         string                 `json:"role"`
	Content      string                 `json:"content"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreationTime time.Time              `json:"creationTime"`
}

// Priorities accepted on tasks. PriorityMedium is the default.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority reports whether p is one of the accepted task priorities.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}
