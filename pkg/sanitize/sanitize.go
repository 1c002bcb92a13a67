// Package sanitize strips active content from user supplied markup before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	PolicyUGC    = "ugc"
	PolicyStrict = "strict"
)

type Sanitizer interface {
	Sanitize(html string) string
}

type policySanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer for the named policy. Unknown names fall back to PolicyUGC,
// which keeps harmless formatting and drops scripts, handlers and unsafe urls.
func New(policy string) Sanitizer {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case PolicyStrict:
		return &policySanitizer{policy: bluemonday.StrictPolicy()}
	default:
		return &policySanitizer{policy: bluemonday.UGCPolicy()}
	}
}

func (s *policySanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// Func adapts a plain function to Sanitizer.
type Func func(string) string

func (f Func) Sanitize(html string) string {
	return f(html)
}
