package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradegate/internal/domain"
)

type stubDecisionQuerier struct {
	listed     []domain.Decision
	lastFilter domain.DecisionFilter
	err        error
}

func (s *stubDecisionQuerier) ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error) {
	s.lastFilter = filter
	return append([]domain.Decision(nil), s.listed...), s.err
}

func testServices() Services {
	return Services{
		Decisions: &stubDecisionQuerier{
			listed: []domain.Decision{{
				ID: 1, Accepted: true, Symbol: "SPC", Direction: domain.DirectionBuy,
				Levels: &domain.Levels{Entry: 6486, StopLoss: 6470, TakeProfit1: 6510, TakeProfit2: 6548.92},
			}},
		},
		Username: "trader",
	}
}

func TestDashboardUpdateDecisionsMsg(t *testing.T) {
	m := NewDashboardModel(testServices())
	m.SetSize(120, 40)

	decisions := []domain.Decision{
		{ID: 1, Accepted: true, Symbol: "SPC", Direction: domain.DirectionBuy},
		{ID: 2, Accepted: false, Symbol: "AAPL", Reason: "symbol not tradeable"},
	}

	updated, _ := m.Update(decisionsMsg(decisions))
	if len(updated.Decisions()) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(updated.Decisions()))
	}
	if updated.Decisions()[0].Symbol != "SPC" {
		t.Fatalf("expected SPC, got %s", updated.Decisions()[0].Symbol)
	}
}

func TestDashboardViewEmpty(t *testing.T) {
	m := NewDashboardModel(testServices())
	m.SetSize(120, 40)
	m.loading = false

	view := m.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !strings.Contains(view, "No decisions yet") {
		t.Fatal("expected empty-state message")
	}
}

func TestDashboardViewWithData(t *testing.T) {
	m := NewDashboardModel(testServices())
	m.SetSize(120, 40)

	m.decisions = []domain.Decision{{
		ID: 1, Accepted: true, Symbol: "SPC", Direction: domain.DirectionBuy,
		Levels: &domain.Levels{Entry: 6486, StopLoss: 6470, TakeProfit1: 6510, TakeProfit2: 6548.92},
	}}
	m.loading = false

	view := m.View()
	if !strings.Contains(view, "SPC") {
		t.Fatal("expected decision row in view")
	}
}

func TestDashboardViewError(t *testing.T) {
	m := NewDashboardModel(testServices())
	m.SetSize(120, 40)

	updated, _ := m.Update(decisionsErrMsg{err: errors.New("db down")})
	view := updated.View()
	if !strings.Contains(view, "db down") {
		t.Fatal("expected error message in view")
	}
}

func TestDashboardCycleVerdictFilters(t *testing.T) {
	querier := &stubDecisionQuerier{}
	m := NewDashboardModel(Services{Decisions: querier})

	m, cmd := m.CycleVerdict()
	if cmd == nil {
		t.Fatal("expected refetch command")
	}
	cmd()
	if querier.lastFilter.Accepted == nil || !*querier.lastFilter.Accepted {
		t.Fatalf("expected accepted filter, got %+v", querier.lastFilter)
	}

	m, cmd = m.CycleVerdict()
	cmd()
	if querier.lastFilter.Accepted == nil || *querier.lastFilter.Accepted {
		t.Fatalf("expected rejected filter, got %+v", querier.lastFilter)
	}

	_, cmd = m.CycleVerdict()
	cmd()
	if querier.lastFilter.Accepted != nil {
		t.Fatalf("expected unfiltered verdict, got %+v", querier.lastFilter)
	}
}

func TestFormatDecisionRowRejectedShowsReason(t *testing.T) {
	row := FormatDecisionRow(domain.Decision{
		ID: 7, Accepted: false, Symbol: "AAPL", Reason: "symbol not tradeable",
	})
	if !strings.Contains(row, "symbol not tradeable") {
		t.Fatalf("expected reason in row, got %q", row)
	}
}
