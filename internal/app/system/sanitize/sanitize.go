// Package sanitize strips markup from user-supplied labels before they are
// persisted. Destination names and activity names come straight from form
// input and are later rendered by the frontend, so they must never carry
// HTML.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Label returns s with all HTML removed and surrounding whitespace trimmed.
func Label(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
