// Package utils collects small formatting helpers; SanitizeFilename is used
// by internal/container.
package utils

import "strings"

// SanitizeFilename removes characters that are invalid in filenames.
func SanitizeFilename(input string) string {
	// replace characters that are problematic in filenames
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(input)
}
