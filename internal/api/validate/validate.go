package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/compasshq/compass/server/internal/model"
)

// userIdRx keeps user ids URL-safe: lowercase letters, digits, hyphen,
// underscore, 1-40 chars.
var userIdRx = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)

const maxMessageLen = 4000

func UserID(v string) error {
	if v == "" {
		return fmt.Errorf("userId is required")
	}
	if !userIdRx.MatchString(v) {
		return fmt.Errorf("userId must match %s", userIdRx.String())
	}
	return nil
}

// ChatMessage validates an inbound chat message: non-blank, bounded length.
func ChatMessage(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("message is required")
	}
	if len(v) > maxMessageLen {
		return fmt.Errorf("message exceeds %d characters", maxMessageLen)
	}
	return nil
}

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func Priority(v string) error {
	if v == "" {
		return nil
	}
	if !model.ValidPriority(v) {
		return fmt.Errorf("priority must be one of high, medium, low")
	}
	return nil
}
