package utils

import (
	"strconv"
	"strings"
)

// ParseLeadingInt reads an optional sign and the leading digits of value,
// ignoring anything after them ("2 чел" -> 2). ok is false when no digit leads.
func ParseLeadingInt(value string) (n int, ok bool) {
	s := strings.TrimSpace(value)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
