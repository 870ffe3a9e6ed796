package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeName strips markup from user supplied names and reports whether
// the input was already clean.
func SanitizeName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	clean := strictPolicy.Sanitize(trimmed)

	return clean, clean == trimmed
}
