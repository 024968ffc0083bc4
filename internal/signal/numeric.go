package signal

import (
	"strconv"
	"strings"
)

// Range separators in the order they are probed at each position. " to " is
// matched before the dashes so "6480 to 6490" is not split inside a number.
var rangeSeparators = []string{" to ", "–", "—", "-"}

// parseNumber converts an arbitrary payload value into a float. Strings may
// carry thousands separators and textual ranges ("6484-6488", "6480 to 6490"),
// which reduce to the midpoint of their endpoints. Anything unparsable yields
// ok=false; parsing never fails loudly.
//
// A "-" at position 0 is treated as a sign, not a range separator, so "-5"
// parses to -5 instead of the midpoint of an empty left side.
func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		return parseNumericString(t)
	default:
		return 0, false
	}
}

func parseNumericString(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	if left, right, found := splitRange(s); found {
		a, aok := parsePlainFloat(left)
		b, bok := parsePlainFloat(right)
		if aok && bok {
			return (a + b) / 2, true
		}
		// Either endpoint failed; treat the whole string as a single number.
	}

	return parsePlainFloat(s)
}

// splitRange splits on the first occurring range separator. The leading-sign
// guard skips a hyphen at index 0.
func splitRange(s string) (left, right string, found bool) {
	bestIdx := -1
	bestSep := ""
	for _, sep := range rangeSeparators {
		searchFrom := 0
		if sep == "-" {
			searchFrom = 1
		}
		if len(s) <= searchFrom {
			continue
		}
		idx := strings.Index(s[searchFrom:], sep)
		if idx < 0 {
			continue
		}
		idx += searchFrom
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			bestSep = sep
		}
	}
	if bestIdx < 0 {
		return "", "", false
	}
	return s[:bestIdx], s[bestIdx+len(bestSep):], true
}

func parsePlainFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
