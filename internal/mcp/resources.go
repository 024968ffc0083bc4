package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tradegate/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, decisions DecisionReader) {
	server.AddResource(&mcp.Resource{
		URI:         "gate://tradeable-symbols",
		Name:        "tradeable-symbols",
		Description: "Canonical symbols the gate will accept",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, domain.TradeableSymbols)
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "decisions://latest{?symbol,accepted,direction,limit}",
		Name:        "decisions-latest",
		Description: "Recent decisions with optional symbol/accepted/direction/limit query params",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if decisions == nil {
			return nil, fmt.Errorf("decision store unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "decisions" || parsed.Host != "latest" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		input := decisionsListInput{
			Symbol:    parsed.Query().Get("symbol"),
			Direction: parsed.Query().Get("direction"),
			Limit:     defaultDecisionLimit,
		}
		if rawLimit := strings.TrimSpace(parsed.Query().Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			input.Limit = n
		}
		if rawAccepted := strings.TrimSpace(parsed.Query().Get("accepted")); rawAccepted != "" {
			accepted, err := strconv.ParseBool(rawAccepted)
			if err != nil {
				return nil, fmt.Errorf("invalid accepted: %s", rawAccepted)
			}
			input.Accepted = &accepted
		}

		filter, err := normalizeDecisionFilter(input)
		if err != nil {
			return nil, err
		}
		list, err := decisions.ListDecisions(ctx, filter)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, decisionsListOutput{Decisions: list})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
