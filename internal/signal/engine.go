package signal

import (
	"time"

	"tradegate/internal/domain"
)

// Engine turns raw webhook alerts into canonical accept/reject decisions. It
// is pure and stateless: every evaluation depends only on its own payload, so
// concurrent use needs no synchronization.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Evaluate runs the full decision pipeline: normalize the symbol, classify
// direction and safety, gate, then finalize levels. Malformed or missing
// fields degrade to absent values; Evaluate never fails.
func (e *Engine) Evaluate(alert domain.Alert) domain.Decision {
	decision := domain.Decision{
		Symbol:     normalizeSymbol(pickString(alert, symbolFields)),
		Interval:   pickString(alert, intervalFields),
		Direction:  domain.DirectionNone,
		ReceivedAt: e.now().UTC(),
	}
	if len(alert) == 0 {
		decision.Reason = "empty payload"
		return decision
	}

	recommendation := pickString(alert, recommendationFields)
	decision.Direction = classifyDirection(recommendation, flattenValues(alert))

	price := parseOptional(alert, priceFields)
	entry := parseOptional(alert, entryFields)
	stop := parseOptional(alert, stopFields)
	tp1 := parseOptional(alert, takeProfit1Fields)
	tp2 := parseOptional(alert, takeProfit2Fields)

	// Safety looks at the payload as received. A zero stop or target counts
	// as absent, and synthesis later on must not influence this check.
	note := pickString(alert, noteFields)
	safe := classifySafety(note, stop.present && stop.value != 0, tp1.present && tp1.value != 0)

	switch {
	case !domain.IsTradeable(decision.Symbol):
		decision.Reason = "symbol not tradeable"
	case decision.Direction == domain.DirectionNone:
		decision.Reason = "no direction"
	case !safe:
		decision.Reason = "not marked safe and missing stop/target"
	default:
		decision.Accepted = true
		levels := synthesizeLevels(decision.Direction, price, entry, stop, tp1, tp2)
		decision.Levels = &levels
	}

	return decision
}

func parseOptional(alert domain.Alert, keys []string) optional {
	v, ok := pickField(alert, keys)
	if !ok {
		return optional{}
	}
	value, parsed := parseNumber(v)
	return optional{value: value, present: parsed}
}
