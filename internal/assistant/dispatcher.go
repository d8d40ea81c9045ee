package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/oracle"
	"github.com/compasshq/compass/server/internal/services"
	"github.com/compasshq/compass/server/internal/timeparse"
)

// Dispatcher orchestrates classification, extraction, entity resolution,
// execution, and response synthesis. It is the single error boundary of the
// pipeline: Handle never returns an error, every stage failure becomes a
// user-facing explanation.
type Dispatcher struct {
	classifier *Classifier
	extractor  *Extractor
	goals      *services.GoalService
	tasks      *services.TaskService
	events     *services.EventService
	history    *ConversationStore
	oracle     oracle.Oracle
	dates      *timeparse.Resolver
	log        zerolog.Logger
	now        func() time.Time
}

type DispatcherDeps struct {
	Oracle  oracle.Oracle
	Goals   *services.GoalService
	Tasks   *services.TaskService
	Events  *services.EventService
	History *ConversationStore
	Dates   *timeparse.Resolver
	Log     zerolog.Logger
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		classifier: NewClassifier(deps.Oracle, deps.Log),
		extractor:  NewExtractor(deps.Oracle, deps.Dates, deps.Log),
		goals:      deps.Goals,
		tasks:      deps.Tasks,
		events:     deps.Events,
		history:    deps.History,
		oracle:     deps.Oracle,
		dates:      deps.Dates,
		log:        deps.Log,
		now:        time.Now,
	}
}

// Handle processes one user message end to end. The per-message state
// machine is sequential: classified, extracted, resolved, executed,
// responded; any stage can short-circuit straight to the response.
func (d *Dispatcher) Handle(ctx context.Context, userID, message string) Response {
	d.history.Append(userID, HistoryMessage{Role: "user", Content: message})

	resp := d.dispatch(ctx, userID, message)
	if resp.Message == "" {
		resp.Message = "I'm not sure how to help with that. Try asking me to add, show, update, or complete a goal, task, or calendar event."
	}
	if resp.Actions == nil {
		resp.Actions = []ActionRecord{}
	}

	d.history.Append(userID, HistoryMessage{Role: "assistant", Content: resp.Message})
	return resp
}

func (d *Dispatcher) dispatch(ctx context.Context, userID, message string) Response {
	cls := d.classifier.Classify(ctx, message)
	d.log.Info().
		Str("user_id", userID).
		Str("domain", string(cls.Domain)).
		Str("operation", string(cls.Operation)).
		Str("confidence", string(cls.Confidence)).
		Msg("dispatching message")

	if cls.Domain == DomainGeneral || cls.Operation == OpHelp {
		return d.handleGeneral(ctx, userID, message)
	}

	switch cls.Operation {
	case OpCreate:
		return d.handleCreate(ctx, userID, message, cls.Domain)
	case OpRead:
		return d.handleRead(ctx, userID, cls.Domain)
	case OpUpdate:
		return d.handleUpdate(ctx, userID, message, cls.Domain)
	case OpDelete:
		return d.handleDelete(ctx, userID, message, cls.Domain)
	case OpComplete:
		return d.handleComplete(ctx, userID, message, cls.Domain)
	default:
		return d.handleGeneral(ctx, userID, message)
	}
}

// handleGeneral answers conversationally. This is the only path that reads
// conversation history.
func (d *Dispatcher) handleGeneral(ctx context.Context, userID, message string) Response {
	history := d.history.Recent(userID, 10)
	// The inbound message was already appended; drop it from the context
	// block so it is not repeated.
	if n := len(history); n > 0 && history[n-1].Content == message {
		history = history[:n-1]
	}
	out, err := d.oracle.Complete(ctx, generalPrompt(message, history))
	if err != nil {
		return d.failureResponse(err, "general reply")
	}
	return Response{Message: strings.TrimSpace(out)}
}

func (d *Dispatcher) handleCreate(ctx context.Context, userID, message string, domain Domain) Response {
	payloads, err := d.extractor.ExtractCreate(ctx, message, domain)
	if err != nil {
		return d.failureResponse(err, "create extraction")
	}
	if len(payloads) == 0 {
		return Response{Message: d.clarifyCreate(domain)}
	}

	var confirmed []string
	var failed []string
	var actions []ActionRecord

	for _, p := range payloads {
		details, err := d.executeCreate(ctx, userID, domain, p)
		if err != nil {
			d.log.Warn().Err(err).Str("title", p.Title).Msg("create execution failed")
			failed = append(failed, fmt.Sprintf("%q (%s)", p.Title, storeFailureReason(err)))
			continue
		}
		confirmed = append(confirmed, fmt.Sprintf("%q", p.Title))
		actions = append(actions, ActionRecord{ActionType: string(OpCreate), EntityType: string(domain), Details: details})
	}

	var b strings.Builder
	if len(confirmed) > 0 {
		fmt.Fprintf(&b, "I've added the %s %s.", pluralNoun(domain, len(confirmed)), strings.Join(confirmed, ", "))
	}
	if len(failed) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "I couldn't add %s.", strings.Join(failed, ", "))
	}
	return Response{Message: b.String(), Actions: actions}
}

func (d *Dispatcher) executeCreate(ctx context.Context, userID string, domain Domain, p Payload) (map[string]interface{}, error) {
	switch domain {
	case DomainGoal:
		g := &model.Goal{UserID: userID, Title: p.Title, TargetDate: &p.Due}
		if p.Description != "" {
			g.Description = &p.Description
		}
		created, err := d.goals.CreateGoal(ctx, g)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"id":          created.GoalID,
			"title":       created.Title,
			"target_date": p.Due.Format("2006-01-02"),
		}, nil
	case DomainTask:
		t := &model.Task{UserID: userID, Title: p.Title, Description: optString(p.Description), DueDate: &p.Due, Priority: p.Priority}
		if p.RelatedGoal != "" {
			if goalCands, err := d.candidates(ctx, userID, DomainGoal); err == nil {
				if match, ok := ResolveEntity(p.RelatedGoal, goalCands); ok {
					t.GoalID = &match.ID
				}
			}
		}
		created, err := d.tasks.CreateTask(ctx, t)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"id":       created.TaskID,
			"title":    created.Title,
			"due_date": p.Due.Format("2006-01-02"),
			"priority": created.Priority,
		}, nil
	case DomainEvent:
		e := &model.CalendarEvent{UserID: userID, Title: p.Title, Description: optString(p.Description), Location: optString(p.Location), StartTime: p.Due, EndTime: p.End}
		created, err := d.events.CreateEvent(ctx, e)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"id":         created.EventID,
			"title":      created.Title,
			"start_time": created.StartTime.Format(time.RFC3339),
			"end_time":   created.EndTime.Format(time.RFC3339),
		}, nil
	}
	return nil, fmt.Errorf("unsupported create domain %q", domain)
}

func (d *Dispatcher) handleRead(ctx context.Context, userID string, domain Domain) Response {
	cands, err := d.candidates(ctx, userID, domain)
	if err != nil {
		return d.failureResponse(err, "read")
	}

	noun := domainNoun(domain)
	if len(cands) == 0 {
		return Response{
			Message: fmt.Sprintf("You don't have any %ss yet. Ask me to add one whenever you're ready.", noun),
			Actions: []ActionRecord{readRecord(domain, 0)},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are your %ss:\n", noun)
	for _, c := range cands {
		fmt.Fprintf(&b, "- %s\n", c.Title)
	}
	return Response{Message: strings.TrimSpace(b.String()), Actions: []ActionRecord{readRecord(domain, len(cands))}}
}

func readRecord(domain Domain, count int) ActionRecord {
	return ActionRecord{ActionType: string(OpRead), EntityType: string(domain), Details: map[string]interface{}{"count": count}}
}

func (d *Dispatcher) handleUpdate(ctx context.Context, userID, message string, domain Domain) Response {
	upd, err := d.extractor.ExtractUpdate(ctx, message, domain)
	if err != nil {
		return d.failureResponse(err, "update extraction")
	}
	if upd.TitleRef == "" {
		return Response{Message: fmt.Sprintf("Which %s would you like to update? Mention its name, for example: \"Change my reading goal's target date to next month\".", domainNoun(domain))}
	}

	match, resp := d.resolveOrRespond(ctx, userID, domain, upd.TitleRef)
	if resp != nil {
		return *resp
	}

	details, err := d.executeUpdate(ctx, userID, domain, match, upd)
	if err != nil {
		return d.failureResponse(err, "update execution")
	}
	return Response{
		Message: fmt.Sprintf("I've updated the %s %q.", domainNoun(domain), match.Title),
		Actions: []ActionRecord{{ActionType: string(OpUpdate), EntityType: string(domain), Details: details}},
	}
}

func (d *Dispatcher) executeUpdate(ctx context.Context, userID string, domain Domain, match Candidate, upd UpdateFields) (map[string]interface{}, error) {
	ref := d.now()
	newDate, hasDate := d.resolveUpdateDate(upd.Date, ref)

	switch domain {
	case DomainGoal:
		g, err := d.goals.GetGoal(ctx, userID, match.ID)
		if err != nil {
			return nil, err
		}
		if upd.NewTitle != "" {
			g.Title = upd.NewTitle
		}
		if upd.Description != "" {
			g.Description = &upd.Description
		}
		if hasDate {
			g.TargetDate = &newDate
		}
		updated, err := d.goals.UpdateGoal(ctx, g)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": updated.GoalID, "title": updated.Title}, nil
	case DomainTask:
		t, err := d.tasks.GetTask(ctx, userID, match.ID)
		if err != nil {
			return nil, err
		}
		if upd.NewTitle != "" {
			t.Title = upd.NewTitle
		}
		if upd.Description != "" {
			t.Description = &upd.Description
		}
		if hasDate {
			t.DueDate = &newDate
		}
		if model.ValidPriority(upd.Priority) {
			t.Priority = upd.Priority
		}
		updated, err := d.tasks.UpdateTask(ctx, t)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": updated.TaskID, "title": updated.Title}, nil
	case DomainEvent:
		e, err := d.events.GetEvent(ctx, userID, match.ID)
		if err != nil {
			return nil, err
		}
		if upd.NewTitle != "" {
			e.Title = upd.NewTitle
		}
		if upd.Description != "" {
			e.Description = &upd.Description
		}
		if upd.Location != "" {
			e.Location = &upd.Location
		}
		if hasDate || upd.Time != "" {
			duration := e.EndTime.Sub(e.StartTime)
			day := e.StartTime
			if hasDate {
				day = newDate
			}
			hhmm := ""
			if upd.Time != "" {
				if t, ok := timeparse.ResolveTime(upd.Time); ok {
					hhmm = t
				}
			}
			if hhmm == "" {
				hhmm = e.StartTime.Format("15:04")
			}
			e.StartTime = d.dates.Combine(day, hhmm)
			e.EndTime = e.StartTime.Add(duration)
		}
		updated, err := d.events.UpdateEvent(ctx, e)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": updated.EventID, "title": updated.Title}, nil
	}
	return nil, fmt.Errorf("unsupported update domain %q", domain)
}

func (d *Dispatcher) resolveUpdateDate(expr string, ref time.Time) (time.Time, bool) {
	if expr == "" {
		return time.Time{}, false
	}
	res, ok := d.dates.Resolve(expr, ref)
	if !ok {
		return time.Time{}, false
	}
	return d.dates.Combine(res.Start, ""), true
}

func (d *Dispatcher) handleDelete(ctx context.Context, userID, message string, domain Domain) Response {
	titleRef, err := d.extractor.ExtractTitle(ctx, message, domain, OpDelete)
	if err != nil {
		return d.failureResponse(err, "delete extraction")
	}
	if titleRef == "" {
		return Response{Message: fmt.Sprintf("Which %s would you like to delete? Mention its name, for example: \"Delete my goal to learn React\".", domainNoun(domain))}
	}

	match, resp := d.resolveOrRespond(ctx, userID, domain, titleRef)
	if resp != nil {
		return *resp
	}

	switch domain {
	case DomainGoal:
		err = d.goals.DeleteGoal(ctx, userID, match.ID)
	case DomainTask:
		err = d.tasks.DeleteTask(ctx, userID, match.ID)
	case DomainEvent:
		err = d.events.DeleteEvent(ctx, userID, match.ID)
	}
	if err != nil {
		return d.failureResponse(err, "delete execution")
	}
	return Response{
		Message: fmt.Sprintf("I've deleted the %s %q.", domainNoun(domain), match.Title),
		Actions: []ActionRecord{{ActionType: string(OpDelete), EntityType: string(domain), Details: map[string]interface{}{"id": match.ID, "title": match.Title}}},
	}
}

func (d *Dispatcher) handleComplete(ctx context.Context, userID, message string, domain Domain) Response {
	if domain == DomainEvent {
		return Response{Message: "Calendar events pass on their own; there's nothing to mark complete. You can delete one if it's no longer needed."}
	}

	titleRef, err := d.extractor.ExtractTitle(ctx, message, domain, OpComplete)
	if err != nil {
		return d.failureResponse(err, "complete extraction")
	}
	if titleRef == "" {
		return Response{Message: fmt.Sprintf("Which %s did you finish? Mention its name, for example: \"Mark the laundry task as done\".", domainNoun(domain))}
	}

	match, resp := d.resolveOrRespond(ctx, userID, domain, titleRef)
	if resp != nil {
		return *resp
	}

	switch domain {
	case DomainGoal:
		g, getErr := d.goals.GetGoal(ctx, userID, match.ID)
		if getErr == nil {
			g.Completed = true
			_, err = d.goals.UpdateGoal(ctx, g)
		} else {
			err = getErr
		}
	case DomainTask:
		t, getErr := d.tasks.GetTask(ctx, userID, match.ID)
		if getErr == nil {
			t.Completed = true
			_, err = d.tasks.UpdateTask(ctx, t)
		} else {
			err = getErr
		}
	}
	if err != nil {
		return d.failureResponse(err, "complete execution")
	}
	return Response{
		Message: fmt.Sprintf("Nice work! I've marked the %s %q as complete.", domainNoun(domain), match.Title),
		Actions: []ActionRecord{{ActionType: string(OpComplete), EntityType: string(domain), Details: map[string]interface{}{"id": match.ID, "title": match.Title}}},
	}
}

// resolveOrRespond resolves a title fragment against the user's stored
// entities. On a miss it returns the user-facing response directly so
// destructive operations are skipped, never attempted against a wrong
// record.
func (d *Dispatcher) resolveOrRespond(ctx context.Context, userID string, domain Domain, titleRef string) (Candidate, *Response) {
	cands, err := d.candidates(ctx, userID, domain)
	if err != nil {
		r := d.failureResponse(err, "entity listing")
		return Candidate{}, &r
	}
	match, ok := ResolveEntity(titleRef, cands)
	if !ok {
		r := Response{Message: fmt.Sprintf("I couldn't find a matching %s for %q. Ask me to show your %ss to see what's there.", domainNoun(domain), titleRef, domainNoun(domain))}
		return Candidate{}, &r
	}
	return match, nil
}

func (d *Dispatcher) candidates(ctx context.Context, userID string, domain Domain) ([]Candidate, error) {
	switch domain {
	case DomainGoal:
		goals, err := d.goals.ListGoals(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(goals))
		for _, g := range goals {
			out = append(out, Candidate{ID: g.GoalID, Title: g.Title})
		}
		return out, nil
	case DomainTask:
		tasks, err := d.tasks.ListTasks(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, Candidate{ID: t.TaskID, Title: t.Title})
		}
		return out, nil
	case DomainEvent:
		events, err := d.events.ListEvents(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(events))
		for _, e := range events {
			out = append(out, Candidate{ID: e.EventID, Title: e.Title})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported domain %q", domain)
}

func (d *Dispatcher) clarifyCreate(domain Domain) string {
	switch domain {
	case DomainGoal:
		return "I'd love to add that goal, but I need a bit more detail. Try something like: \"Add a goal to learn Spanish by next summer\"."
	case DomainTask:
		return "I'd love to add that task, but I need a bit more detail. Try something like: \"Add a task to review documents by Friday\"."
	case DomainEvent:
		return "I'd love to schedule that, but I need a bit more detail. Try something like: \"Schedule a dentist appointment next Friday at 2pm\"."
	}
	return "Could you give me a bit more detail about what you'd like to add?"
}

// failureResponse is the dispatcher-boundary conversion of a store/oracle
// error into an apology. Errors are categorized by message substring and
// logged; nothing is retried within a message.
func (d *Dispatcher) failureResponse(err error, stage string) Response {
	cat := oracle.Categorize(err)
	d.log.Error().Err(err).Str("stage", stage).Str("category", string(cat)).Msg("pipeline stage failed")
	return Response{Message: oracle.UserMessage(cat)}
}

func storeFailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case strings.Contains(err.Error(), "validation"):
		return "it was missing required details"
	default:
		return "the save failed"
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pluralNoun(domain Domain, n int) string {
	noun := domainNoun(domain)
	if n == 1 {
		return noun
	}
	return noun + "s"
}
