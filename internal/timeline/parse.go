package timeline

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseLyrics converts a pasted block of lyrics into its non-empty lines.
// Both \n and \r\n line endings are accepted, each line is trimmed, and lines
// that are empty after trimming are dropped. Order is preserved and an
// all-blank input yields nil; callers treat that as nothing to import.
//
// Text is normalized to NFC first so combining-character lyrics compare and
// render consistently downstream.
func ParseLyrics(text string) []string {
	normalized := norm.NFC.String(text)
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
