package signal

import (
	"testing"

	"tradegate/internal/domain"
)

func TestPickFieldPriorityOrder(t *testing.T) {
	alert := domain.Alert{"ticker": "ES", "s": "SPY", "symbol": "SPC"}
	v, ok := pickField(alert, symbolFields)
	if !ok || v != "SPC" {
		t.Fatalf("expected symbol to win over ticker and s, got %v", v)
	}
}

func TestPickFieldSkipsEmptyAndNil(t *testing.T) {
	alert := domain.Alert{"symbol": "", "ticker": nil, "s": "spx"}
	v, ok := pickField(alert, symbolFields)
	if !ok || v != "spx" {
		t.Fatalf("expected fallthrough to s, got %v", v)
	}
}

func TestPickFieldExactKeyMatchOnly(t *testing.T) {
	alert := domain.Alert{"Symbol": "SPC"}
	if _, ok := pickField(alert, symbolFields); ok {
		t.Fatal("expected no match for differently-cased key")
	}
}

func TestFlattenValuesIsStable(t *testing.T) {
	alert := domain.Alert{"b": "Sell", "a": 42.0, "c": nil, "d": true}
	want := "42 sell"
	for i := 0; i < 10; i++ {
		if got := flattenValues(alert); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
