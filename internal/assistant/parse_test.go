package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryStructuredParse(t *testing.T) {
	out := tryStructuredParse(`Sure! Here you go: {"domain": "task", "operation": "read"} hope that helps`)
	require.True(t, out.Parsed)
	assert.Equal(t, "task", stringField(out.Fields, "domain"))
}

func TestTryStructuredParse_NestedObject(t *testing.T) {
	text := `{"action_type": "create", "details": {"title": "run", "priority": "high"}}`
	out := tryStructuredParse(text)
	require.True(t, out.Parsed)
	details, ok := out.Fields["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "run", details["title"])
}

func TestTryFencedBlockParse(t *testing.T) {
	text := "Here's the result:\n```json\n{\"domain\": \"goal\", \"operation\": \"create\"}\n```\nDone."
	out := tryFencedBlockParse(text)
	require.True(t, out.Parsed)
	assert.Equal(t, "goal", stringField(out.Fields, "domain"))

	// Plain fences without a language tag still parse.
	text = "```\n{\"domain\": \"task\"}\n```"
	out = tryFencedBlockParse(text)
	require.True(t, out.Parsed)
	assert.Equal(t, "task", stringField(out.Fields, "domain"))
}

func TestTryFieldRegexParse(t *testing.T) {
	strategy := tryFieldRegexParse("domain", "operation", "confidence")
	out := strategy(`the model said domain": "task" but broke "operation": "read" the json "confidence": "high"`)
	require.True(t, out.Parsed)
	assert.Equal(t, "read", stringField(out.Fields, "operation"))
	assert.Equal(t, "high", stringField(out.Fields, "confidence"))

	out = strategy("no fields at all here")
	assert.False(t, out.Parsed)
}

func TestParseCascade_Order(t *testing.T) {
	// A fenced block whose body is valid JSON: the structured parse already
	// handles it, the cascade must stop there.
	text := "```json\n{\"domain\": \"goal\"}\n```"
	out := parseCascade(text, tryStructuredParse, tryFencedBlockParse, tryFieldRegexParse("domain"))
	require.True(t, out.Parsed)
	assert.Equal(t, "goal", stringField(out.Fields, "domain"))

	// Truly broken JSON falls through to the regex scrape.
	text = `{"domain": "task", "operation": }`
	out = parseCascade(text, tryStructuredParse, tryFencedBlockParse, tryFieldRegexParse("domain"))
	require.True(t, out.Parsed)
	assert.Equal(t, "task", stringField(out.Fields, "domain"))
}

func TestParseCascade_AllFail(t *testing.T) {
	out := parseCascade("just words", tryStructuredParse, tryFencedBlockParse, tryFieldRegexParse("domain"))
	assert.False(t, out.Parsed)
}

func TestScanJSONObjects(t *testing.T) {
	text := `first: {"a": 1} then {"b": {"c": 2}} trailing { unbalanced`
	blocks := scanJSONObjects(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, `{"a": 1}`, blocks[0])
	assert.Equal(t, `{"b": {"c": 2}}`, blocks[1])

	assert.Empty(t, scanJSONObjects("no objects here"))
}
