package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/oracle"
	"github.com/compasshq/compass/server/internal/timeparse"
)

// Extractor turns a message plus a {domain, operation} pair into typed
// payloads. A nil payload slice with a nil error means the message did not
// carry enough information, which is a normal outcome.
type Extractor struct {
	oracle oracle.Oracle
	dates  *timeparse.Resolver
	log    zerolog.Logger
	now    func() time.Time
}

func NewExtractor(o oracle.Oracle, dates *timeparse.Resolver, log zerolog.Logger) *Extractor {
	return &Extractor{oracle: o, dates: dates, log: log, now: time.Now}
}

// ExtractCreate asks the oracle for the create fields and resolves any date
// expressions. Messages naming several items of the same domain yield one
// payload per item, in order. Unresolvable dates fall back to a
// domain-specific default instead of blocking the whole extraction.
func (e *Extractor) ExtractCreate(ctx context.Context, message string, domain Domain) ([]Payload, error) {
	out, err := e.oracle.Complete(ctx, extractCreatePrompt(message, domain))
	if err != nil {
		return nil, err
	}

	objects := scanJSONObjects(out)
	if len(objects) == 0 {
		if fenced := tryFencedBlockParse(out); fenced.Parsed {
			return e.payloadsFromFields(domain, []map[string]interface{}{fenced.Fields}), nil
		}
		e.log.Debug().Str("domain", string(domain)).Msg("extraction produced no JSON objects")
		return nil, nil
	}

	var fieldSets []map[string]interface{}
	for _, obj := range objects {
		if parsed := tryStructuredParse(obj); parsed.Parsed {
			fieldSets = append(fieldSets, parsed.Fields)
		}
	}
	return e.payloadsFromFields(domain, fieldSets), nil
}

func (e *Extractor) payloadsFromFields(domain Domain, fieldSets []map[string]interface{}) []Payload {
	var payloads []Payload
	for _, fields := range fieldSets {
		if ok, present := boolField(fields, "success"); present && !ok {
			e.log.Debug().Str("reason", stringField(fields, "error")).Msg("extraction reported insufficiency")
			continue
		}
		title := stringField(fields, "title")
		if title == "" {
			continue
		}
		payloads = append(payloads, e.buildPayload(domain, title, fields))
	}
	return payloads
}

func (e *Extractor) buildPayload(domain Domain, title string, fields map[string]interface{}) Payload {
	p := Payload{
		Title:       title,
		Description: stringField(fields, "description"),
	}
	ref := e.now()

	switch domain {
	case DomainGoal:
		p.Due = e.resolveOrDefault(stringField(fields, "target_date"), ref, ref.AddDate(0, 1, 0))
	case DomainTask:
		p.Due = e.resolveOrDefault(stringField(fields, "due_date"), ref, ref.AddDate(0, 0, 7))
		p.RelatedGoal = stringField(fields, "related_goal")
		p.Priority = strings.ToLower(stringField(fields, "priority"))
		if !model.ValidPriority(p.Priority) {
			p.Priority = model.PriorityMedium
		}
	case DomainEvent:
		p.Location = stringField(fields, "location")
		date := ref
		if res, ok := e.dates.Resolve(stringField(fields, "date"), ref); ok {
			date = res.Start
		}
		hhmm, _ := timeparse.ResolveTime(stringField(fields, "time"))
		p.Due = e.dates.Combine(date, hhmm)
		p.End = p.Due.Add(time.Hour)
	}
	return p
}

// resolveOrDefault resolves a date expression to a 9:00 local timestamp,
// normalized forward so stale years from the model become upcoming dates.
// Unresolvable expressions get the provided default day.
func (e *Extractor) resolveOrDefault(expr string, ref, defaultDay time.Time) time.Time {
	if res, ok := e.dates.Resolve(expr, ref); ok {
		return e.dates.NormalizeForward(e.dates.Combine(res.Start, ""), ref)
	}
	return e.dates.Combine(defaultDay, "")
}

// UpdateFields carries the explicitly requested changes of an update
// message. Zero-value fields were not mentioned.
type UpdateFields struct {
	TitleRef    string
	NewTitle    string
	Description string
	Date        string
	Time        string
	Priority    string
	Location    string
}

// ExtractUpdate recovers the referenced title and only the fields the user
// asked to change. Date and time stay unresolved strings here; the
// dispatcher resolves them against the record being updated.
func (e *Extractor) ExtractUpdate(ctx context.Context, message string, domain Domain) (UpdateFields, error) {
	out, err := e.oracle.Complete(ctx, extractUpdatePrompt(message, domain))
	if err != nil {
		return UpdateFields{}, err
	}
	parsed := parseCascade(out,
		tryStructuredParse,
		tryFencedBlockParse,
		tryFieldRegexParse("title", "new_title", "description", "date", "time", "priority", "location"),
	)
	if !parsed.Parsed {
		return UpdateFields{}, nil
	}
	return UpdateFields{
		TitleRef:    stringField(parsed.Fields, "title"),
		NewTitle:    stringField(parsed.Fields, "new_title"),
		Description: stringField(parsed.Fields, "description"),
		Date:        stringField(parsed.Fields, "date"),
		Time:        stringField(parsed.Fields, "time"),
		Priority:    strings.ToLower(stringField(parsed.Fields, "priority")),
		Location:    stringField(parsed.Fields, "location"),
	}, nil
}

// ExtractTitle recovers the title phrase an update/delete/complete message
// refers to. An empty title with nil error means no reference was found.
func (e *Extractor) ExtractTitle(ctx context.Context, message string, domain Domain, op Operation) (string, error) {
	out, err := e.oracle.Complete(ctx, extractTitlePrompt(message, domain, op))
	if err != nil {
		return "", err
	}
	parsed := parseCascade(out,
		tryStructuredParse,
		tryFencedBlockParse,
		tryFieldRegexParse("title"),
	)
	if !parsed.Parsed {
		return "", nil
	}
	return stringField(parsed.Fields, "title"), nil
}
