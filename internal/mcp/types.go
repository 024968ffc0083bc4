package mcp

import (
	"fmt"
	"strings"

	"tradegate/internal/domain"
)

const (
	defaultDecisionLimit = 50
	maxDecisionLimit     = 200
)

type alertsEvaluateInput struct {
	Payload map[string]any `json:"payload" jsonschema:"raw alert payload as the webhook would receive it"`
}

type alertsEvaluateOutput struct {
	Decision domain.Decision `json:"decision"`
}

type decisionsListInput struct {
	Symbol    string `json:"symbol,omitempty" jsonschema:"optional tradeable symbol (e.g. SPC, ES)"`
	Accepted  *bool  `json:"accepted,omitempty" jsonschema:"optional verdict filter: true for accepted, false for rejected"`
	Direction string `json:"direction,omitempty" jsonschema:"optional direction: buy or sell"`
	Limit     int    `json:"limit,omitempty" jsonschema:"number of decisions to return, max 200"`
}

type decisionsListOutput struct {
	Decisions []domain.Decision `json:"decisions"`
}

func normalizeListSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if !domain.IsTradeable(symbol) {
		return "", fmt.Errorf("unsupported symbol: %s", symbol)
	}
	return symbol, nil
}

func normalizeDirection(direction string) (domain.Direction, error) {
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction == "" {
		return "", nil
	}

	d := domain.Direction(direction)
	if !d.IsValid() || d == domain.DirectionNone {
		return "", fmt.Errorf("unsupported direction: %s", direction)
	}
	return d, nil
}

func normalizeDecisionLimit(limit int) int {
	if limit <= 0 {
		return defaultDecisionLimit
	}
	if limit > maxDecisionLimit {
		return maxDecisionLimit
	}
	return limit
}

func normalizeDecisionFilter(in decisionsListInput) (domain.DecisionFilter, error) {
	filter := domain.DecisionFilter{
		Accepted: in.Accepted,
		Limit:    normalizeDecisionLimit(in.Limit),
	}

	if strings.TrimSpace(in.Symbol) != "" {
		symbol, err := normalizeListSymbol(in.Symbol)
		if err != nil {
			return domain.DecisionFilter{}, err
		}
		filter.Symbol = symbol
	}

	direction, err := normalizeDirection(in.Direction)
	if err != nil {
		return domain.DecisionFilter{}, err
	}
	filter.Direction = direction

	return filter, nil
}
