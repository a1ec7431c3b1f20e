package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Ordered strict layouts tried before the lenient pass. The DD/MM and MM/DD
// layouts are both present so either regional convention parses; the first
// that accepts the input wins.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseDate turns a free-text date substring into a concrete point in time.
// It tries the strict layouts in order, then falls back to lenient natural
// language parsing. It never invents a value: when nothing matches it
// returns false and the caller decides on a default.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	if ts, err := dateparse.ParseAny(raw); err == nil {
		return ts, true
	}

	return time.Time{}, false
}
