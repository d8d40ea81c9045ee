// Package assistant implements the natural-language command pipeline:
// intent classification, detail extraction, entity resolution, and action
// dispatch with failure containment at the dispatcher boundary.
package assistant

import "time"

// Domain is the entity category a message is about.
type Domain string

const (
	DomainGoal    Domain = "goal"
	DomainTask    Domain = "task"
	DomainEvent   Domain = "calendar_event"
	DomainGeneral Domain = "general"
)

func validDomain(d Domain) bool {
	switch d {
	case DomainGoal, DomainTask, DomainEvent, DomainGeneral:
		return true
	}
	return false
}

// Operation is what the user wants done within a domain.
type Operation string

const (
	OpCreate   Operation = "create"
	OpRead     Operation = "read"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpComplete Operation = "complete"
	OpHelp     Operation = "help"
)

func validOperation(op Operation) bool {
	switch op {
	case OpCreate, OpRead, OpUpdate, OpDelete, OpComplete, OpHelp:
		return true
	}
	return false
}

// Confidence is attached to classifications for logging and heuristics; it
// never gates execution.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func validConfidence(c Confidence) bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ClassificationResult is the typed outcome of intent classification. After
// validation every field holds one of its enumerated values.
type ClassificationResult struct {
	Domain     Domain     `json:"domain"`
	Operation  Operation  `json:"operation"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
}

// DefaultClassification is the safe fallback when classification fails.
func DefaultClassification() ClassificationResult {
	return ClassificationResult{Domain: DomainGeneral, Operation: OpHelp, Confidence: ConfidenceLow}
}

// Payload carries the extracted fields for one create operation. A payload
// is only produced when extraction fully succeeds; there is no
// partially-valid payload.
type Payload struct {
	Title       string
	Description string
	Due         time.Time // goal target date, task due date, or event start
	End         time.Time // events only
	Priority    string
	RelatedGoal string
	Location    string
}

// ActionRecord is the structured audit entry for one executed mutation or
// query. The presentation layer renders these; the message text and records
// must agree about what happened.
type ActionRecord struct {
	ActionType string                 `json:"action_type"`
	EntityType string                 `json:"entity_type"`
	Details    map[string]interface{} `json:"details"`
}

// Response is what the dispatcher hands back to the chat surface.
type Response struct {
	Message string         `json:"message"`
	Actions []ActionRecord `json:"actions"`
}
