package assistant

import (
	"fmt"
	"strings"
)

const classifyPromptTemplate = `You are the intent classifier for a personal productivity assistant that manages goals, tasks, and calendar events.

Classify the user's message into exactly one domain and one operation. Respond with ONLY a JSON object in this format:

{
  "domain": "[goal | task | calendar_event | general]",
  "operation": "[create | read | update | delete | complete | help]",
  "confidence": "[high | medium | low]",
  "reasoning": "one short sentence"
}

Classification rules:
1. An action word at the start of the sentence decides the operation, even when other keywords suggest otherwise. "Delete my goal to learn React" is a delete, not a create.
2. If the message mentions two domains, classify by the FIRST-mentioned domain and set confidence to "medium".
3. Requests for help, advice, or general questions are always domain "general" and operation "help", regardless of domain keywords.
4. "Show", "list", "what are" style phrasing is operation "read".
5. "Mark ... as done", "finished", "completed" style phrasing is operation "complete".

Examples:

Message: "Show my tasks"
{"domain": "task", "operation": "read", "confidence": "high", "reasoning": "explicit request to list tasks"}

Message: "Delete my goal to learn React"
{"domain": "goal", "operation": "delete", "confidence": "high", "reasoning": "leading action word delete targets a goal"}

Message: "Add a task to review documents and update my exercise goal"
{"domain": "task", "operation": "create", "confidence": "medium", "reasoning": "two domains mentioned; first is task"}

Message: "How do I stay motivated?"
{"domain": "general", "operation": "help", "confidence": "high", "reasoning": "advice request, no data operation"}

Message: "Schedule a dentist appointment for next Friday at 2pm"
{"domain": "calendar_event", "operation": "create", "confidence": "high", "reasoning": "scheduling a calendar event"}

Message: "Mark the laundry task as done"
{"domain": "task", "operation": "complete", "confidence": "high", "reasoning": "completion phrasing targets a task"}

User message: %q

JSON:`

func classifyPrompt(message string) string {
	return fmt.Sprintf(classifyPromptTemplate, message)
}

const extractCreateTemplate = `You are the detail extractor for a personal productivity assistant. The user wants to create one or more %s records.

Extract the details from the message. Respond with ONLY JSON. For a single item respond with one object; for multiple items respond with one object per item, in the order mentioned:

%s

Set "success" to false and explain in "error" when the message does not contain enough information to create a %s. Extract only what the user actually said; never invent a title.

User message: %q

JSON:`

const goalFieldsSpec = `{
  "success": true,
  "title": "short goal title",
  "description": "longer explanation (optional)",
  "category": "category name (optional)",
  "target_date": "natural language or YYYY-MM-DD (optional)",
  "error": "why extraction failed (only when success is false)"
}`

const taskFieldsSpec = `{
  "success": true,
  "title": "short task title",
  "description": "longer explanation (optional)",
  "due_date": "natural language or YYYY-MM-DD (optional)",
  "priority": "[high | medium | low] (optional)",
  "related_goal": "associated goal title (optional)",
  "error": "why extraction failed (only when success is false)"
}`

const eventFieldsSpec = `{
  "success": true,
  "title": "short event title",
  "description": "longer explanation (optional)",
  "location": "place (optional)",
  "date": "natural language or YYYY-MM-DD (optional)",
  "time": "time of day like 2:30 PM or 14:30 (optional)",
  "error": "why extraction failed (only when success is false)"
}`

func extractCreatePrompt(message string, domain Domain) string {
	noun := domainNoun(domain)
	spec := taskFieldsSpec
	switch domain {
	case DomainGoal:
		spec = goalFieldsSpec
	case DomainEvent:
		spec = eventFieldsSpec
	}
	return fmt.Sprintf(extractCreateTemplate, noun, spec, noun, message)
}

const extractTitleTemplate = `You are the detail extractor for a personal productivity assistant. The user wants to %s an existing %s.

Extract the title phrase the user is referring to. Use the user's own words; never invent a title. Respond with ONLY JSON:

{"title": "the referenced title phrase"}

If no existing %s is referenced, respond with {"title": ""}.

User message: %q

JSON:`

func extractTitlePrompt(message string, domain Domain, op Operation) string {
	noun := domainNoun(domain)
	return fmt.Sprintf(extractTitleTemplate, string(op), noun, noun, message)
}

const extractUpdateTemplate = `You are the detail extractor for a personal productivity assistant. The user wants to update an existing %s.

Extract which record they mean and only the fields they explicitly want changed. Respond with ONLY JSON:

{
  "title": "the referenced title phrase, in the user's own words",
  "new_title": "replacement title (only if the user renames it)",
  "description": "new description (only if mentioned)",
  "date": "new date, natural language or YYYY-MM-DD (only if mentioned)",
  "time": "new time of day (only if mentioned)",
  "priority": "[high | medium | low] (only if mentioned)",
  "location": "new location (only if mentioned)"
}

Omit every field the user did not mention. If no existing %s is referenced, respond with {"title": ""}.

User message: %q

JSON:`

func extractUpdatePrompt(message string, domain Domain) string {
	noun := domainNoun(domain)
	return fmt.Sprintf(extractUpdateTemplate, noun, noun, message)
}

const generalPromptTemplate = `You are a friendly personal productivity assistant. You help users manage long-term goals, short-term tasks, and calendar events through conversation, and give practical productivity advice.

%sUser message: %q

Reply conversationally in a few sentences. Do not emit JSON.`

func generalPrompt(message string, history []HistoryMessage) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, h := range history {
			b.WriteString(h.Role)
			b.WriteString(": ")
			b.WriteString(h.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return fmt.Sprintf(generalPromptTemplate, b.String(), message)
}

func domainNoun(d Domain) string {
	switch d {
	case DomainGoal:
		return "goal"
	case DomainTask:
		return "task"
	case DomainEvent:
		return "calendar event"
	default:
		return "item"
	}
}
