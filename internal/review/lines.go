package review

import "strings"

// SplitLines normalizes CRLF to LF and splits text into logical lines.
// A final newline does not produce a trailing empty line (so "a\nb\n"
// gives ["a","b"], and the empty string gives no lines). Both sides of a
// diff must go through this same convention or hunk boundaries would be
// spurious.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines up to the terminal newline,
// which is presentation and restored by the caller that writes the
// document out.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
