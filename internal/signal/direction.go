package signal

import (
	"strings"

	"tradegate/internal/domain"
)

// Bilingual keyword sets. Matching is plain substring containment over
// lowercased text, so "bought" matches "buy"; that permissiveness is part of
// the contract with the alert producers.
var (
	buyKeywords  = []string{"buy", "long", "شراء", "طويل"}
	sellKeywords = []string{"sell", "short", "بيع", "قصير"}
	safeKeywords = []string{"safe", "آمنة", "مفعل"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// classifyDirection resolves a direction from the recommendation-like field
// and the flattened payload text. Both predicates are evaluated; a sell match
// always overrides a buy match, so mixed vocabulary resolves to sell.
func classifyDirection(recommendation, flattened string) domain.Direction {
	rec := strings.ToLower(recommendation)

	isBuy := containsAny(rec, buyKeywords) || containsAny(flattened, buyKeywords)
	isSell := containsAny(rec, sellKeywords) || containsAny(flattened, sellKeywords)

	direction := domain.DirectionNone
	if isBuy {
		direction = domain.DirectionBuy
	}
	if isSell {
		direction = domain.DirectionSell
	}
	return direction
}

// classifySafety reports whether the alert is explicitly marked safe or
// carries both a stop and a first target. Callers must pass the pre-synthesis
// presence flags; synthesized levels never satisfy this predicate.
func classifySafety(note string, hasStop, hasTarget bool) bool {
	if containsAny(strings.ToLower(note), safeKeywords) {
		return true
	}
	return hasStop && hasTarget
}
