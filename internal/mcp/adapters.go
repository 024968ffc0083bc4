package mcp

import (
	"context"

	"tradegate/internal/domain"
)

// AlertEvaluator runs the normalization and gate pipeline on one raw
// payload without persisting anything.
type AlertEvaluator interface {
	Evaluate(alert domain.Alert) domain.Decision
}

// DecisionReader exposes read operations over stored decisions.
type DecisionReader interface {
	ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error)
}
