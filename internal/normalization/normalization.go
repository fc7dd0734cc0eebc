package normalization

import "strings"

// ParseInputString trims surrounding whitespace from user-provided input.
func ParseInputString(s string) string {
  return strings.TrimSpace(s)
}

// NormalizeEmail lowercases in addition to trimming so the unique index on
// user.email cannot be dodged by case variation.
func NormalizeEmail(s string) string {
  return strings.ToLower(strings.TrimSpace(s))
}
