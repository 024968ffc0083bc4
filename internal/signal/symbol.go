package signal

import "strings"

// symbolAliases maps case-normalized raw ticker spellings to their canonical
// symbol. Unknown tickers pass through uppercased; eligibility is the gate's
// concern, not the normalizer's.
var symbolAliases = map[string]string{
	"SPCUSD":           "SPC",
	"SPC":              "SPC",
	"SPCUSD/US DOLLAR": "SPC",
	"ESU2025":          "ES",
	"ES":               "ES",
	"SPX":              "SPX",
	"SPY":              "SPY",
	"DX1!":             "DX1!",
	"DXY":              "DX1!",
	"VX1!":             "VX1!",
	"VIX":              "VX1!",
}

func normalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := symbolAliases[s]; ok {
		return canonical
	}
	return s
}
