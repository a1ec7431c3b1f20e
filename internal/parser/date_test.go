package parser

import (
	"testing"
	"time"
)

func TestParseDateStrictLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-05-01 10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"13/02/2024", time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC)},
		{"13/02/2024 08:30:00", time.Date(2024, 2, 13, 8, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := ParseDate(tc.raw)
		if !ok {
			t.Fatalf("%q: expected a parse", tc.raw)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestParseDateDayFirstTakesPrecedence(t *testing.T) {
	// Ambiguous slash dates resolve day-first before the month-first layout
	// gets a chance.
	got, ok := ParseDate("03/04/2024")
	if !ok {
		t.Fatalf("expected a parse")
	}
	want := time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseDateLenientFallback(t *testing.T) {
	got, ok := ParseDate("May 1, 2024")
	if !ok {
		t.Fatalf("expected the lenient pass to handle a written-out date")
	}
	if got.Year() != 2024 || got.Month() != time.May || got.Day() != 1 {
		t.Fatalf("expected 2024-05-01, got %v", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "markers", "not a date"} {
		if _, ok := ParseDate(raw); ok {
			t.Fatalf("%q: expected no parse", raw)
		}
	}
}
