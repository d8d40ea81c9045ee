package oracle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FailureCategory
	}{
		{"nil", nil, FailureUnknown},
		{"missing key", errors.New("gemini: API key not valid"), FailureConnectivity},
		{"refused", errors.New("dial tcp: connection refused"), FailureConnectivity},
		{"quota", errors.New("gemini status 429: quota exceeded"), FailureQuota},
		{"rate limit", errors.New("rate limit hit"), FailureQuota},
		{"timeout", errors.New("context deadline exceeded"), FailureTimeout},
		{"other", errors.New("boom"), FailureUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Categorize(tc.err))
		})
	}
}

func TestCategorize_ConnectivityBeforeQuota(t *testing.T) {
	// An error mentioning both the key and quota is a configuration problem
	// first.
	err := errors.New("API key over quota")
	assert.Equal(t, FailureConnectivity, Categorize(err))
}

func TestUserMessage_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, cat := range []FailureCategory{FailureConnectivity, FailureQuota, FailureTimeout, FailureUnknown} {
		msg := UserMessage(cat)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message for %s", cat)
		seen[msg] = true
	}
}
