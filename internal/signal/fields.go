package signal

import (
	"fmt"
	"sort"
	"strings"

	"tradegate/internal/domain"
)

// Field alias priority lists. Order encodes source-field priority: explicit
// names win over generic ones, generic ones over single-letter shorthands.
var (
	symbolFields         = []string{"symbol", "ticker", "s"}
	intervalFields       = []string{"interval", "timeframe", "tf", "resolution"}
	priceFields          = []string{"price", "close", "last", "p"}
	entryFields          = []string{"entry", "entry_price", "zone", "entryZone", "دخول"}
	stopFields           = []string{"sl", "stop", "stop_loss", "stopLoss", "وقف"}
	takeProfit1Fields    = []string{"tp1", "tp", "target", "target1", "takeProfit1", "هدف"}
	takeProfit2Fields    = []string{"tp2", "target2", "takeProfit2", "هدف2"}
	recommendationFields = []string{"recommendation", "signal", "type", "position", "dir"}
	noteFields           = []string{"label", "note", "comment", "Message"}
)

// pickField returns the value of the first candidate key present in the alert
// whose value is neither nil nor an empty string. Keys match exactly.
func pickField(alert domain.Alert, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := alert[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func pickString(alert domain.Alert, keys []string) string {
	v, ok := pickField(alert, keys)
	if !ok {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// flattenValues joins every string and numeric value of the alert into one
// lowercased blob for keyword scanning. Keys are visited in sorted order and
// values are space-separated, so the result is stable regardless of map order.
func flattenValues(alert domain.Alert) string {
	keys := make([]string, 0, len(alert))
	for k := range alert {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := alert[k].(type) {
		case string:
			parts = append(parts, v)
		case float64, int:
			parts = append(parts, stringify(v))
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
