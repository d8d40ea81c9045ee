package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// scriptedOracle replays canned responses in order; shared by the pipeline
// tests in this package.
type scriptedOracle struct {
	responses []string
	err       error
	prompts   []string
}

func (o *scriptedOracle) Complete(ctx context.Context, prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	if o.err != nil {
		return "", o.err
	}
	if len(o.responses) == 0 {
		return "", errors.New("scripted oracle exhausted")
	}
	out := o.responses[0]
	o.responses = o.responses[1:]
	return out, nil
}

func (o *scriptedOracle) Healthy(ctx context.Context) error { return nil }

func classifierWith(responses ...string) (*Classifier, *scriptedOracle) {
	o := &scriptedOracle{responses: responses}
	return NewClassifier(o, zerolog.Nop()), o
}

func TestClassify_Structured(t *testing.T) {
	c, _ := classifierWith(`{"domain": "task", "operation": "read", "confidence": "high", "reasoning": "list request"}`)
	got := c.Classify(context.Background(), "Show my tasks")
	assert.Equal(t, DomainTask, got.Domain)
	assert.Equal(t, OpRead, got.Operation)
	assert.Equal(t, ConfidenceHigh, got.Confidence)
}

func TestClassify_ActionWordDominates(t *testing.T) {
	c, _ := classifierWith(`{"domain": "goal", "operation": "delete", "confidence": "high", "reasoning": "leading delete"}`)
	got := c.Classify(context.Background(), "Delete my goal to learn React")
	assert.Equal(t, DomainGoal, got.Domain)
	assert.Equal(t, OpDelete, got.Operation)
}

func TestClassify_FencedResponse(t *testing.T) {
	c, _ := classifierWith("```json\n{\"domain\": \"calendar_event\", \"operation\": \"create\", \"confidence\": \"high\", \"reasoning\": \"scheduling\"}\n```")
	got := c.Classify(context.Background(), "Schedule a dentist appointment")
	assert.Equal(t, DomainEvent, got.Domain)
	assert.Equal(t, OpCreate, got.Operation)
}

func TestClassify_RegexFallback(t *testing.T) {
	c, _ := classifierWith(`I think "domain": "task" and "operation": "create", with "confidence": "medium" because: {broken`)
	got := c.Classify(context.Background(), "Add a task and update my goal")
	assert.Equal(t, DomainTask, got.Domain)
	assert.Equal(t, OpCreate, got.Operation)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
}

func TestClassify_PerFieldCoercion(t *testing.T) {
	// Only the invalid fields collapse to defaults; valid ones survive.
	c, _ := classifierWith(`{"domain": "task", "operation": "banish", "confidence": "very sure", "reasoning": "?"}`)
	got := c.Classify(context.Background(), "whatever")
	assert.Equal(t, DomainTask, got.Domain)
	assert.Equal(t, OpHelp, got.Operation)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}

func TestClassify_UnparsableDefaults(t *testing.T) {
	c, _ := classifierWith("I can certainly help with that!")
	got := c.Classify(context.Background(), "???")
	assert.Equal(t, DefaultClassification().Domain, got.Domain)
	assert.Equal(t, DefaultClassification().Operation, got.Operation)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}

func TestClassify_OracleFailureNeverThrows(t *testing.T) {
	o := &scriptedOracle{err: errors.New("dial tcp: connection refused")}
	c := NewClassifier(o, zerolog.Nop())
	got := c.Classify(context.Background(), "Show my tasks")
	assert.Equal(t, DomainGeneral, got.Domain)
	assert.Equal(t, OpHelp, got.Operation)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}
