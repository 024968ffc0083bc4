package signal

import (
	"testing"

	"tradegate/internal/domain"
)

func TestClassifyDirectionBuy(t *testing.T) {
	if got := classifyDirection("BUY", ""); got != domain.DirectionBuy {
		t.Fatalf("expected buy, got %s", got)
	}
	if got := classifyDirection("", "going long here"); got != domain.DirectionBuy {
		t.Fatalf("expected buy from flattened text, got %s", got)
	}
}

func TestClassifyDirectionSell(t *testing.T) {
	if got := classifyDirection("short setup", ""); got != domain.DirectionSell {
		t.Fatalf("expected sell, got %s", got)
	}
}

func TestClassifyDirectionArabicKeywords(t *testing.T) {
	if got := classifyDirection("شراء", ""); got != domain.DirectionBuy {
		t.Fatalf("expected buy for Arabic keyword, got %s", got)
	}
	if got := classifyDirection("", "إشارة بيع"); got != domain.DirectionSell {
		t.Fatalf("expected sell for Arabic keyword, got %s", got)
	}
}

func TestClassifyDirectionSellOverridesBuy(t *testing.T) {
	// Mixed vocabulary resolves to sell; the override order is contractual.
	if got := classifyDirection("buy then sell", ""); got != domain.DirectionSell {
		t.Fatalf("expected sell on mixed keywords, got %s", got)
	}
	if got := classifyDirection("buy", "closing the short"); got != domain.DirectionSell {
		t.Fatalf("expected sell when flattened text mentions short, got %s", got)
	}
}

func TestClassifyDirectionNone(t *testing.T) {
	if got := classifyDirection("hold", "no signal yet"); got != domain.DirectionNone {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestClassifyDirectionSubstringPermissiveness(t *testing.T) {
	// Plain substring containment, no tokenization.
	if got := classifyDirection("buyback announced", ""); got != domain.DirectionBuy {
		t.Fatalf("expected buy for substring match, got %s", got)
	}
}

func TestClassifySafetyNote(t *testing.T) {
	if !classifySafety("This setup is SAFE", false, false) {
		t.Fatal("expected safe from note keyword")
	}
	if !classifySafety("آمنة", false, false) {
		t.Fatal("expected safe from Arabic note keyword")
	}
}

func TestClassifySafetyLevels(t *testing.T) {
	if !classifySafety("", true, true) {
		t.Fatal("expected safe when both stop and target present")
	}
	if classifySafety("", true, false) {
		t.Fatal("expected unsafe with only a stop")
	}
	if classifySafety("no signal yet", false, true) {
		t.Fatal("expected unsafe with only a target")
	}
}
