package validate

import "strings"

const fence = "```"

// Sanitize removes markdown code fences that models wrap JSON in.
// Only fences at the very start and end of the text are stripped, so
// backticks inside JSON string values survive. Text without any fence
// marker is returned unchanged.
func Sanitize(raw string) string {
	if !strings.Contains(raw, fence) {
		return raw
	}
	s := strings.TrimSpace(raw)
	for {
		next := stripFence(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripFence(s string) string {
	out := s
	if strings.HasPrefix(out, fence) {
		rest := out[len(fence):]
		i := 0
		for i < len(rest) && isTagByte(rest[i]) {
			i++
		}
		tag, after := rest[:i], rest[i:]
		// "```json{" is common enough; other tags must be followed by whitespace.
		if tag == "" || after == "" || isSpace(after[0]) || strings.EqualFold(tag, "json") {
			out = after
		}
	}
	if strings.HasSuffix(out, fence) {
		out = out[:len(out)-len(fence)]
	}
	return strings.TrimSpace(out)
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_' || b == '+' || b == '.'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
