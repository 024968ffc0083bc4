package signal

import (
	"math"

	"tradegate/internal/domain"
)

const (
	minStep       = 2.0
	stepPriceFrac = 0.002
	stepMultiple  = 3.0
)

// optional is a parsed numeric payload field that may be absent.
type optional struct {
	value   float64
	present bool
}

func (o optional) or(fallback float64) float64 {
	if o.present {
		return o.value
	}
	return fallback
}

// synthesizeLevels finalizes the risk levels for an accepted signal. Fields
// present in the payload are kept verbatim; each absent field is filled from
// the step heuristic step = max(2.0, price*0.002) around the reference price.
// Synthesized values are rounded to 2 decimals.
//
// takeProfit2 is always derived from takeProfit1 with the price-derived step,
// even when stop and first target came in explicitly. The step is not scaled
// to the actual stop-to-target distance.
func synthesizeLevels(direction domain.Direction, price, entry, stop, tp1, tp2 optional) domain.Levels {
	step := math.Max(minStep, price.or(0)*stepPriceFrac)
	reference := price.or(entry.or(0))

	sign := 1.0
	if direction == domain.DirectionSell {
		sign = -1.0
	}

	levels := domain.Levels{Entry: entry.or(price.or(0))}

	if stop.present {
		levels.StopLoss = stop.value
	} else {
		levels.StopLoss = round2(reference - sign*stepMultiple*step)
	}

	if tp1.present {
		levels.TakeProfit1 = tp1.value
	} else {
		levels.TakeProfit1 = round2(reference + sign*stepMultiple*step)
	}

	if tp2.present {
		levels.TakeProfit2 = tp2.value
	} else {
		levels.TakeProfit2 = round2(levels.TakeProfit1 + sign*stepMultiple*step)
	}

	return levels
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
