// Package shared provides common utility functions used across multiple
// packages in the maven-deps codebase.
package shared

import (
	"path/filepath"
	"strings"
)

// GroupPath converts a dotted group id into the relative repository
// path segment, e.g. "com.example.sdk" -> "com/example/sdk".
func GroupPath(group string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(group), ".", "/"))
}

// SplitList splits a space-delimited persisted list field, dropping
// empty entries.
func SplitList(value string) []string {
	return strings.Fields(value)
}

// JoinList renders a list back into its space-delimited persisted form.
func JoinList(items []string) string {
	return strings.Join(items, " ")
}
