package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseLengthRange accepts "n" or "min-max".
func parseLengthRange(rangeStr string) (minLen int, maxLen int, err error) {
	rangeArr := strings.Split(strings.TrimSpace(rangeStr), "-")
	if len(rangeArr) > 2 {
		return 0, 0, fmt.Errorf("length range too large: expected at most 2 numbers, got %d", len(rangeArr))
	}

	minLen, err = strconv.Atoi(strings.TrimSpace(rangeArr[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid length range %q: %w", rangeStr, err)
	}
	if len(rangeArr) == 1 {
		return minLen, minLen, nil
	}

	maxLen, err = strconv.Atoi(strings.TrimSpace(rangeArr[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid length range %q: %w", rangeStr, err)
	}
	return minLen, maxLen, nil
}

// uniqueSymbols drops repeated symbols, keeping the first occurrence so the
// enumeration order follows the order the user typed.
func uniqueSymbols(chars string) string {
	seen := make(map[rune]struct{}, len(chars))
	var sb strings.Builder
	for _, r := range chars {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		sb.WriteRune(r)
	}
	return sb.String()
}
