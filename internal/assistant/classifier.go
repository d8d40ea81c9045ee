package assistant

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/compasshq/compass/server/internal/oracle"
)

// Classifier maps a raw message to a ClassificationResult. It never returns
// an error; any failure collapses to the safe default.
type Classifier struct {
	oracle oracle.Oracle
	log    zerolog.Logger
}

func NewClassifier(o oracle.Oracle, log zerolog.Logger) *Classifier {
	return &Classifier{oracle: o, log: log}
}

// Classify prompts the oracle and parses its response through the fallback
// cascade: balanced-object parse, fenced-block parse, then per-field regex
// scrape. Each recovered field is validated against its enumeration
// independently; an invalid value coerces that field to its default, not
// the whole result.
func (c *Classifier) Classify(ctx context.Context, message string) ClassificationResult {
	out, err := c.oracle.Complete(ctx, classifyPrompt(message))
	if err != nil {
		c.log.Warn().Err(err).Str("category", string(oracle.Categorize(err))).Msg("classification oracle call failed")
		return DefaultClassification()
	}

	parsed := parseCascade(out,
		tryStructuredParse,
		tryFencedBlockParse,
		tryFieldRegexParse("domain", "operation", "confidence", "reasoning"),
	)
	if !parsed.Parsed {
		c.log.Warn().Str("response", truncate(out, 200)).Msg("classification response unparsable")
		return DefaultClassification()
	}

	result := DefaultClassification()
	if d := Domain(stringField(parsed.Fields, "domain")); validDomain(d) {
		result.Domain = d
	}
	if op := Operation(stringField(parsed.Fields, "operation")); validOperation(op) {
		result.Operation = op
	}
	if conf := Confidence(stringField(parsed.Fields, "confidence")); validConfidence(conf) {
		result.Confidence = conf
	}
	result.Reasoning = stringField(parsed.Fields, "reasoning")

	c.log.Debug().
		Str("domain", string(result.Domain)).
		Str("operation", string(result.Operation)).
		Str("confidence", string(result.Confidence)).
		Msg("message classified")
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
