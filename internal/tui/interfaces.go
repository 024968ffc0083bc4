package tui

import (
	"context"

	"tradegate/internal/domain"
)

// DecisionQuerier provides stored decisions to the TUI.
type DecisionQuerier interface {
	ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error)
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Decisions DecisionQuerier
	Username  string
}
