package sentences

import (
	"strconv"
	"strings"
)

// ParseIndex reads a persisted current index and clamps it to a list of the
// given length. Anything unparsable resolves to 0.
func ParseIndex(raw string, length int) int {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return clamp(index, length)
}

// FormatIndex is the persisted form of an index
func FormatIndex(index int) string {
	return strconv.Itoa(index)
}

func clamp(index, length int) int {
	if length == 0 || index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}
