package common

import (
	"strconv"
	"strings"
)

// AtoiDefault parses value as a base-10 integer, returning def for empty or
// malformed input.
func AtoiDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
