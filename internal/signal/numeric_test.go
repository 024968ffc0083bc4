package signal

import (
	"math"
	"testing"
)

func TestParseNumberRangeMidpoint(t *testing.T) {
	got, ok := parseNumber("6484-6488")
	if !ok {
		t.Fatal("expected range to parse")
	}
	if got != 6486.0 {
		t.Fatalf("expected midpoint 6486, got %v", got)
	}
}

func TestParseNumberRangeSeparators(t *testing.T) {
	cases := map[string]float64{
		"6480 to 6490": 6485,
		"6480–6490":    6485,
		"6480—6490":    6485,
		"1,200-1,400":  1300,
	}
	for in, want := range cases {
		got, ok := parseNumber(in)
		if !ok {
			t.Fatalf("expected %q to parse", in)
		}
		if got != want {
			t.Fatalf("expected %q -> %v, got %v", in, want, got)
		}
	}
}

func TestParseNumberLeadingMinusIsSignNotRange(t *testing.T) {
	got, ok := parseNumber("-5")
	if !ok {
		t.Fatal("expected -5 to parse")
	}
	if got != -5.0 {
		t.Fatalf("expected -5, got %v", got)
	}
}

func TestParseNumberNegativeRange(t *testing.T) {
	// The leading minus is a sign; the second hyphen still splits the range.
	got, ok := parseNumber("-10-6")
	if !ok {
		t.Fatal("expected range to parse")
	}
	if got != -2.0 {
		t.Fatalf("expected midpoint -2, got %v", got)
	}
}

func TestParseNumberUnparsable(t *testing.T) {
	for _, in := range []any{"abc", "", nil, true, "--"} {
		if _, ok := parseNumber(in); ok {
			t.Fatalf("expected %v to be absent", in)
		}
	}
}

func TestParseNumberPassThrough(t *testing.T) {
	if got, ok := parseNumber(6486.5); !ok || got != 6486.5 {
		t.Fatalf("expected float pass-through, got %v %v", got, ok)
	}
	if got, ok := parseNumber(7); !ok || got != 7.0 {
		t.Fatalf("expected int pass-through, got %v %v", got, ok)
	}
}

func TestParseNumberScientificNotation(t *testing.T) {
	got, ok := parseNumber("1e-5")
	if !ok {
		t.Fatal("expected scientific notation to parse")
	}
	if math.Abs(got-1e-5) > 1e-12 {
		t.Fatalf("expected 1e-5, got %v", got)
	}
}

func TestParseNumberThousandsSeparators(t *testing.T) {
	got, ok := parseNumber("6,486.25")
	if !ok || got != 6486.25 {
		t.Fatalf("expected 6486.25, got %v %v", got, ok)
	}
}
