package mcp

import (
	"context"
	"fmt"

	"tradegate/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, engine AlertEvaluator, decisions DecisionReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "alerts_evaluate",
		Description: "Run the normalization and safety gate on a raw alert payload without persisting it",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in alertsEvaluateInput) (*mcp.CallToolResult, alertsEvaluateOutput, error) {
		_ = ctx
		if engine == nil {
			return nil, alertsEvaluateOutput{}, fmt.Errorf("decision engine unavailable")
		}
		if len(in.Payload) == 0 {
			return nil, alertsEvaluateOutput{}, fmt.Errorf("payload is required")
		}
		decision := engine.Evaluate(domain.Alert(in.Payload))
		return nil, alertsEvaluateOutput{Decision: decision}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decisions_list",
		Description: "Get recent stored decisions with optional symbol/accepted/direction filters",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in decisionsListInput) (*mcp.CallToolResult, decisionsListOutput, error) {
		if decisions == nil {
			return nil, decisionsListOutput{}, fmt.Errorf("decision store unavailable")
		}
		filter, err := normalizeDecisionFilter(in)
		if err != nil {
			return nil, decisionsListOutput{}, err
		}
		result, err := decisions.ListDecisions(ctx, filter)
		if err != nil {
			return nil, decisionsListOutput{}, err
		}
		return nil, decisionsListOutput{Decisions: result}, nil
	})
}
