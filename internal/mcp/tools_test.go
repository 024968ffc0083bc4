package mcp

import (
	"context"
	"testing"
	"time"

	"tradegate/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestToolsListAndInvoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, decisions := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	if len(tools.Tools) < 2 {
		t.Fatalf("expected at least 2 tools, got %d", len(tools.Tools))
	}

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name: "alerts_evaluate",
		Arguments: map[string]any{"payload": map[string]any{
			"symbol": "SPCUSD", "type": "BUY", "price": 6486, "sl": 6470, "tp1": 6510,
		}},
	})
	if err != nil {
		t.Fatalf("evaluate tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "decisions_list",
		Arguments: map[string]any{"symbol": "spc", "direction": "buy", "limit": 5},
	})
	if err != nil {
		t.Fatalf("list tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected list tool error: %+v", res.Content)
	}
	if decisions.lastFilter.Symbol != "SPC" {
		t.Fatalf("expected uppercased symbol, got %s", decisions.lastFilter.Symbol)
	}
	if decisions.lastFilter.Direction != domain.DirectionBuy || decisions.lastFilter.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", decisions.lastFilter)
	}
}

func TestToolsValidationFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "decisions_list",
		Arguments: map[string]any{"symbol": "AAPL"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level validation error")
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "alerts_evaluate",
		Arguments: map[string]any{"payload": map[string]any{}},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected empty payload to be rejected")
	}
}
