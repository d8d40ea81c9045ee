package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseOutcome is the tagged result of one parse strategy.
type ParseOutcome struct {
	Parsed bool
	Fields map[string]interface{}
}

func unparsed() ParseOutcome { return ParseOutcome{} }

// parseStrategy attempts to recover a JSON object from raw model output.
type parseStrategy func(text string) ParseOutcome

// parseCascade composes strategies left to right and returns the first
// parsed outcome.
func parseCascade(text string, strategies ...parseStrategy) ParseOutcome {
	for _, s := range strategies {
		if out := s(text); out.Parsed {
			return out
		}
	}
	return unparsed()
}

// tryStructuredParse extracts the first balanced {...} block and parses it
// as JSON.
func tryStructuredParse(text string) ParseOutcome {
	blocks := scanJSONObjects(text)
	if len(blocks) == 0 {
		return unparsed()
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(blocks[0]), &fields); err != nil {
		return unparsed()
	}
	return ParseOutcome{Parsed: true, Fields: fields}
}

var fencedBlockPattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// tryFencedBlockParse strips code-fence markers and retries the structured
// parse on the fenced body.
func tryFencedBlockParse(text string) ParseOutcome {
	m := fencedBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return unparsed()
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(m[1]), &fields); err != nil {
		return tryStructuredParse(m[1])
	}
	return ParseOutcome{Parsed: true, Fields: fields}
}

// tryFieldRegexParse scrapes quoted string fields independently when
// full-object parsing fails. Only the named fields are recovered.
func tryFieldRegexParse(fields ...string) parseStrategy {
	return func(text string) ParseOutcome {
		out := make(map[string]interface{})
		for _, f := range fields {
			re := regexp.MustCompile(`(?i)"` + regexp.QuoteMeta(f) + `"\s*:\s*"([^"]*)"`)
			if m := re.FindStringSubmatch(text); m != nil {
				out[f] = m[1]
			}
		}
		if len(out) == 0 {
			return unparsed()
		}
		return ParseOutcome{Parsed: true, Fields: out}
	}
}

// scanJSONObjects returns every balanced top-level {...} block in the text,
// in order. Braces inside JSON strings are rare in model output for this
// prompt shape, so a depth counter is sufficient.
func scanJSONObjects(text string) []string {
	var blocks []string
	depth := 0
	start := -1
	for i, r := range text {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					blocks = append(blocks, text[start:i+1])
					start = -1
				}
			}
		}
	}
	return blocks
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func boolField(fields map[string]interface{}, key string) (bool, bool) {
	if v, ok := fields[key]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}
