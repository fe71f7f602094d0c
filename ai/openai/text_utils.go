package openai

import "strings"

// extractJSON strips markdown code fences and any prose around the first
// JSON object in text. A missing closing brace is left for repair.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if s == "" || s[0] == '{' || s[0] == '[' {
		return s
	}
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	s = s[start:]
	if end := strings.LastIndexByte(s, '}'); end >= 0 && strings.TrimSpace(s[end+1:]) != "" {
		s = s[:end+1]
	}
	return s
}
