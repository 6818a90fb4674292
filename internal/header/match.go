// Package header scores how well a table cell matches a set of header aliases.
package header

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Scores assigned by the non-fuzzy rules.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreSubstring = 0.8
	// fuzzyFloor is the fuzzy-only score at or below which Match reports no match.
	fuzzyFloor = 0.6
)

// Normalize applies Unicode NFKC, collapses whitespace runs to single spaces
// and lowercases.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Match returns a confidence in [0, 1] that text is one of aliases.
//
// Each alias is scored by the first rule that applies: exact match (1.0,
// returned immediately), text starting with the alias (0.9), containment in
// either direction (0.8 scaled by the length ratio), and otherwise the
// Ratcliff/Obershelp similarity. The best score over all aliases wins. When
// only similarity scores were produced and the best is at or below 0.6 the
// result is 0.
func Match(text string, aliases []string) float64 {
	t := Normalize(text)
	if t == "" {
		return 0
	}

	var (
		best  float64
		fired bool
	)
	for _, alias := range aliases {
		a := Normalize(alias)
		if a == "" {
			continue
		}

		var score float64
		switch {
		case t == a:
			return scoreExact
		case strings.HasPrefix(t, a):
			score, fired = scorePrefix, true
		case strings.Contains(t, a) || strings.Contains(a, t):
			score, fired = scoreSubstring*lengthRatio(t, a), true
		default:
			score = Ratio(t, a)
		}
		if score > best {
			best = score
		}
	}

	if !fired && best <= fuzzyFloor {
		return 0
	}
	return best
}

// lengthRatio is min/max of the rune lengths.
func lengthRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la > lb {
		la, lb = lb, la
	}
	if lb == 0 {
		return 0
	}
	return float64(la) / float64(lb)
}
