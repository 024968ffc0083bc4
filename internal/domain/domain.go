package domain

import "time"

// Alert is the raw webhook payload as decoded from the request body. Producers
// control the key names and value formats, so nothing here is validated.
type Alert map[string]any

type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
	DirectionNone Direction = "none"
)

// TradeableSymbols is the fixed set of canonical symbols the decision gate accepts.
var TradeableSymbols = []string{"SPC", "ES", "SPX", "SPY", "DX1!", "VX1!"}

func IsTradeable(symbol string) bool {
	for _, s := range TradeableSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Levels holds the risk levels of an accepted signal. Values either come
// straight from the payload or are synthesized via the step heuristic.
type Levels struct {
	Entry       float64 `json:"entry"`
	StopLoss    float64 `json:"stop_loss"`
	TakeProfit1 float64 `json:"take_profit_1"`
	TakeProfit2 float64 `json:"take_profit_2"`
}

// Decision is the canonical accept/reject record produced for one alert.
// Rejected decisions carry no levels.
type Decision struct {
	ID         int64     `json:"id,omitempty"`
	Accepted   bool      `json:"accepted"`
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Interval   string    `json:"interval,omitempty"`
	Levels     *Levels   `json:"levels,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Review     string    `json:"review,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

type DecisionFilter struct {
	Symbol    string
	Accepted  *bool
	Direction Direction
	Limit     int
}

func (d Direction) IsValid() bool {
	return d == DirectionBuy || d == DirectionSell || d == DirectionNone
}
