package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from user-supplied free text such as book
// and category descriptions before it is persisted.
func SanitizeText(s string) string {
	return sanitizePolicy.Sanitize(s)
}
