package workshop

import "strings"

// ExtractID resolves a user-supplied workshop identifier or URL to a
// numeric content ID, best effort. The fallback chain never fails outright:
// an unusable input passes through verbatim and fails later at download
// time.
func ExtractID(raw string) string {
	input := strings.TrimSpace(raw)

	if input != "" && isAllDigits(input) {
		return input
	}

	// Query string: value of the id= parameter.
	if pos := strings.LastIndex(input, "?"); pos >= 0 {
		for _, param := range strings.Split(input[pos+1:], "&") {
			if value, ok := strings.CutPrefix(param, "id="); ok {
				return value
			}
		}
	}

	// Path segment after the last slash, digits only.
	if pos := strings.LastIndex(input, "/"); pos >= 0 {
		var digits strings.Builder
		for _, r := range input[pos+1:] {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() > 0 {
			return digits.String()
		}
	}

	return input
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
