package markup

import "strings"

// Split breaks a rendered message into chunks no longer than limit
// characters, preferring paragraph boundaries. A single paragraph longer
// than the limit is split at fixed intervals. A non-positive limit
// disables splitting.
func Split(text string, limit int) []string {
	if limit <= 0 || len([]rune(text)) <= limit {
		return []string{text}
	}

	var parts []string
	var buffer string
	for _, para := range strings.Split(text, "\n") {
		candidate := para
		if buffer != "" {
			candidate = buffer + "\n" + para
		}
		if len([]rune(candidate)) <= limit {
			buffer = candidate
			continue
		}
		if buffer != "" {
			parts = append(parts, buffer)
			buffer = ""
		}
		if len([]rune(para)) > limit {
			parts = append(parts, hardSplit(para, limit)...)
		} else {
			buffer = para
		}
	}
	if buffer != "" {
		parts = append(parts, buffer)
	}
	return parts
}

// hardSplit cuts a paragraph into limit-sized rune chunks.
func hardSplit(s string, limit int) []string {
	runes := []rune(s)
	var parts []string
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
