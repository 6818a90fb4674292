// Package locations splits free-text place lists from bulletins and
// advisories into individual place names.
package locations

import (
	"regexp"
	"slices"
	"strings"
)

// Validator decides whether a candidate is a known place.
type Validator interface {
	IsValidName(name string) bool
}

// Directional words that combine with a neighbouring word into one place,
// "Northern Samar" and "Negros Occidental".
var (
	directionalPrefixes = []string{"Northern", "Southern", "Eastern", "Western", "Central", "North", "South", "East", "West", "Greater"}
	directionalSuffixes = []string{"Occidental", "Oriental"}
)

var (
	// columnGapRe is the wide gap separating two table columns in extracted text.
	columnGapRe = regexp.MustCompile(` {2,}`)

	// impactsRe marks where the impact description begins.
	impactsRe = regexp.MustCompile(`(?i)potential\s+impacts`)
)

// Tokenizer splits place lists, stopping at the first unknown place.
type Tokenizer struct {
	valid Validator
}

// NewTokenizer returns a tokenizer validating against v. A nil v accepts
// every candidate.
func NewTokenizer(v Validator) *Tokenizer {
	return &Tokenizer{valid: v}
}

// Split parses text such as "Batanes, Cagayan including Babuyan Islands, and
// Northern Samar" into places.
//
// Text after a column gap (two or more spaces) or a "Potential Impacts"
// heading is ignored. Commas inside parentheses do not split. A trailing
// "and X Y" where Y starts the next column yields X and then Y parsed on its
// own. Parsing stops entirely at the first candidate that fails validation.
func (t *Tokenizer) Split(text string) []string {
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	if loc := columnGapRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	if loc := impactsRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || text == "-" {
		return nil
	}

	parts := SplitTopLevel(text)
	var out []string
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if isFiller(part) {
			continue
		}

		if rest, ok := cutAnd(part); ok {
			places, stop := t.splitAndClause(rest)
			out = append(out, places...)
			if stop {
				return out
			}
			continue
		}

		if slices.Contains(directionalPrefixes, part) && i+1 < len(parts) {
			j := i + 1
			if strings.EqualFold(parts[j], "and") && j+1 < len(parts) {
				j++
			}
			if !isFiller(parts[j]) {
				combined := part + " " + parts[j]
				if !t.accept(combined) {
					return out
				}
				out = append(out, combined)
				i = j
				continue
			}
		}

		if i+1 < len(parts) && slices.Contains(directionalSuffixes, parts[i+1]) {
			part += " " + parts[i+1]
			i++
		}

		if !t.accept(part) {
			return out
		}
		out = append(out, part)
	}
	return out
}

// splitAndClause handles the words following a leading "and". It reports
// whether parsing must stop.
func (t *Tokenizer) splitAndClause(rest string) ([]string, bool) {
	words := strings.Fields(rest)
	if len(words) == 0 {
		return nil, false
	}

	if len(words) >= 2 && slices.Contains(directionalPrefixes, words[0]) {
		combined := words[0] + " " + words[1]
		if t.accept(combined) {
			return append([]string{combined}, t.Split(strings.Join(words[2:], " "))...), false
		}
	}

	if !t.accept(words[0]) {
		return nil, true
	}
	return append([]string{words[0]}, t.Split(strings.Join(words[1:], " "))...), false
}

func (t *Tokenizer) accept(candidate string) bool {
	return t.valid == nil || t.valid.IsValidName(candidate)
}

func isFiller(part string) bool {
	return part == "" || part == "-" || strings.EqualFold(part, "and")
}

func cutAnd(part string) (string, bool) {
	if len(part) > 4 && strings.EqualFold(part[:4], "and ") {
		return part[4:], true
	}
	return "", false
}

// SplitTopLevel splits s on commas outside parentheses and trims each piece.
// Empty pieces are kept.
func SplitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
