package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	assert.NoError(t, UserID("alice-01"))
	assert.NoError(t, UserID("u_1"))
	assert.Error(t, UserID(""))
	assert.Error(t, UserID("Has Space"))
	assert.Error(t, UserID("UPPER"))
	assert.Error(t, UserID(strings.Repeat("a", 41)))
}

func TestChatMessage(t *testing.T) {
	assert.NoError(t, ChatMessage("add a task"))
	assert.Error(t, ChatMessage("   "))
	assert.Error(t, ChatMessage(strings.Repeat("x", 4001)))
}

func TestPriority(t *testing.T) {
	assert.NoError(t, Priority(""))
	assert.NoError(t, Priority("high"))
	assert.Error(t, Priority("urgent"))
}
