package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tradegate/internal/domain"
	"tradegate/internal/signal"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubDecisionService struct {
	listed     []domain.Decision
	lastFilter domain.DecisionFilter
}

func (s *stubDecisionService) ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error) {
	s.lastFilter = filter
	return append([]domain.Decision(nil), s.listed...), nil
}

func testServer() (*sdkmcp.Server, *stubDecisionService) {
	decisions := &stubDecisionService{
		listed: []domain.Decision{{
			ID: 1, Accepted: true, Symbol: "SPC", Direction: domain.DirectionBuy,
			Interval: "15m", ReceivedAt: time.Unix(0, 0).UTC(),
			Levels: &domain.Levels{Entry: 6486, StopLoss: 6470, TakeProfit1: 6510, TakeProfit2: 6548.92},
		}},
	}

	engine := signal.NewEngine(func() time.Time { return time.Unix(0, 0).UTC() })
	srv := NewServer(nil, engine, decisions, ServerConfig{RequestTimeout: time.Second})
	return srv, decisions
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

type authRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}
