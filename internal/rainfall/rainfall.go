// Package rainfall reads heavy rainfall outlooks written as prose, for example
// "Moderate to heavy rains over Cagayan, Isabela and Aurora.", into a
// three-level table.
package rainfall

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/locations"
)

const (
	// keywordWindow bounds the distance between an intensity phrase and the
	// keyword that introduces its places.
	keywordWindow = 300

	// placesFallback is the place text length used when no period follows.
	placesFallback = 150
)

// intensityRes holds one pattern per level, most severe first. Each level's
// phrases are alternated so the leftmost occurrence wins.
var intensityRes = [domain.RainfallLevels]*regexp.Regexp{
	regexp.MustCompile(`(?i)moderate\s+to\s+heavy|heavy\s+to\s+intense|intense\s+to\s+torrential`),
	regexp.MustCompile(`(?i)light\s+to\s+moderate`),
	regexp.MustCompile(`(?i)slight\s+to\s+light|\blight\s+(?:rains?|showers?)\b`),
}

var (
	keywordRe = regexp.MustCompile(`(?i)\b(?:over|in|affecting)\b`)

	qualifierRe = regexp.MustCompile(`(?i)^(?:and|the|rest\s+of|portions?\s+of|parts\s+of|most\s+of|mainland|extreme|northern|southern|eastern|western|central)\b\s*`)

	vagueRe = regexp.MustCompile(`(?i)\b(?:rest\s+of|portions?\s+of|parts\s+of|areas\s+of|most\s+of|remaining|other)\b`)

	islandGroupRe = regexp.MustCompile(`(?i)\b(?:luzon|visayas|mindanao)\b`)

	// andRe is the connector inside "Isabela and Leyte".
	andRe = regexp.MustCompile(`(?i)\s+and\s+`)

	leadingAndRe = regexp.MustCompile(`(?i)^\s*and\s+`)
)

// Parser extracts a RainfallTable.
type Parser struct {
	classifier gazetteer.Classifier
}

func NewParser(c gazetteer.Classifier) *Parser {
	return &Parser{classifier: c}
}

// Parse fills each level from the first sentence using that level's
// intensity phrase. Later sentences with the same intensity are ignored.
func (p *Parser) Parse(text string) domain.RainfallTable {
	var table domain.RainfallTable
	for i, re := range intensityRes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		places := placeText(text[loc[1]:])
		if places == "" {
			continue
		}
		table[i] = p.classify(places)
	}
	return table
}

// placeText returns the place list introduced by the first over/in/affecting
// keyword after an intensity phrase.
func placeText(after string) string {
	window := truncate(after, keywordWindow)
	kw := keywordRe.FindStringIndex(window)
	if kw == nil {
		return ""
	}
	rest := after[kw[1]:]
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		rest = rest[:dot]
	} else {
		rest = truncate(rest, placesFallback)
	}
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

func (p *Parser) classify(places string) domain.RainfallLevel {
	t := make(tally)
	for _, tok := range splitPlaces(places) {
		phrase := strings.TrimSpace(leadingAndRe.ReplaceAllString(tok, ""))
		if phrase == "" {
			continue
		}
		if isVague(phrase) {
			t.add(domain.Other, phrase)
			continue
		}
		name := stripQualifiers(phrase)
		if name == "" {
			continue
		}
		// A qualified island group name ("extreme northern Luzon") is no place.
		if _, isGroup := domain.ParseRegion(name); isGroup {
			t.add(domain.Other, phrase)
			continue
		}
		if region, ok := p.classifier.Classify(name); ok {
			t.add(region, name)
		}
	}
	return t.level()
}

// splitPlaces splits on top-level commas and on the "and" joining the last
// two items of a list.
func splitPlaces(places string) []string {
	var out []string
	for _, tok := range locations.SplitTopLevel(places) {
		out = append(out, andRe.Split(tok, -1)...)
	}
	return out
}

// isVague reports whether phrase names only part of an island group, as in
// "the rest of Luzon".
func isVague(phrase string) bool {
	return vagueRe.MatchString(phrase) && islandGroupRe.MatchString(phrase)
}

// Group classifies already separated place names into one level. Names the
// classifier does not know are dropped.
func Group(c gazetteer.Classifier, names []string) domain.RainfallLevel {
	t := make(tally)
	for _, name := range names {
		if region, ok := c.Classify(name); ok {
			t.add(region, name)
		}
	}
	return t.level()
}

// tally collects place names per island group in input order.
type tally map[domain.Region][]string

func (t tally) add(r domain.Region, name string) { t[r] = append(t[r], name) }

// level joins each group's names. The group with the most names is primary;
// ties go to the earlier group in domain.Regions.
func (t tally) level() domain.RainfallLevel {
	var level domain.RainfallLevel
	best := 0
	for _, region := range domain.Regions {
		names := t[region]
		if len(names) == 0 {
			continue
		}
		level.Groups.SetIfEmpty(region, strings.Join(names, ", "))
		if len(names) > best {
			best = len(names)
			level.Primary = region
		}
	}
	return level
}

func stripQualifiers(tok string) string {
	for {
		stripped := qualifierRe.ReplaceAllString(tok, "")
		if stripped == tok {
			return strings.TrimSpace(tok)
		}
		tok = stripped
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
