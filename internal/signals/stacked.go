package signals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/locations"
)

// markerWindow is how far after the table title the "wind threat:" marker
// may appear for the stacked layout to apply.
const markerWindow = 600

// deniedPhrases mark impact-description lines inside a signal block.
var deniedPhrases = []string{
	"wind threat:",
	"strong winds",
	"prevailing winds",
	"warning lead time:",
	"potential impacts",
	"range of wind speeds",
	"beaufort",
	"threat to life",
}

var (
	// signalNumberTextRe finds a signal level in running text: a labelled
	// number anywhere ("TCWS No. 3 Batanes", "Signal #3") or a bare number
	// alone on its line.
	signalNumberTextRe = regexp.MustCompile(`(?im)\b(?:TCWS|Signal)[ \t]*(?:No\.?|#)?[ \t]*([1-5])\b|^[ \t]*([1-5])[ \t]*$`)

	// sectionEndRe marks the first heading after the signal section.
	sectionEndRe = regexp.MustCompile(`(?i)\bHAZARDS\b|HEAVY\s+RAINFALL`)

	// boilerplateRe matches page headers and footers.
	boilerplateRe = regexp.MustCompile(`(?i)^page\s+\d+\s+of\s+\d+|dost-pagasa|prepared\s+by|checked\s+by|tropical\s+cyclone\s+bulletin|www\.|https?://`)

	// regionLabelRe matches a leading "Luzon:" style label.
	regionLabelRe = regexp.MustCompile(`(?i)^(?:luzon|visayas|mindanao)\s*:?\s*`)
)

// stacked reads the layout where each signal number is followed by its
// impact description and place list as free text.
func (p *Parser) stacked(text string) (domain.SignalTable, bool) {
	var table domain.SignalTable

	section, ok := p.stackedSection(strings.ReplaceAll(text, "\r", ""))
	if !ok {
		return table, false
	}

	matches := signalNumberTextRe.FindAllStringSubmatchIndex(section, -1)
	for i, m := range matches {
		digit := m[2]
		if digit < 0 {
			digit = m[4]
		}
		level, _ := strconv.Atoi(section[digit : digit+1])
		end := len(section)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		p.fillLevel(&table, level, section[m[1]:end])
	}
	return table, !table.IsEmpty()
}

// stackedSection returns the text from the table title to the next section
// heading, provided the "wind threat:" marker follows the title closely.
func (p *Parser) stackedSection(text string) (string, bool) {
	lower := strings.ToLower(text)
	start := -1
	for _, alias := range p.aliases {
		if i := strings.Index(lower, strings.ToLower(alias)); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start < 0 {
		return "", false
	}

	window := lower[start:min(len(lower), start+markerWindow)]
	if !strings.Contains(window, "wind threat:") {
		return "", false
	}

	section := text[start:]
	if loc := sectionEndRe.FindStringIndex(section); loc != nil && loc[0] > 0 {
		section = section[:loc[0]]
	}
	return section, true
}

// fillLevel classifies the places listed in one signal block.
func (p *Parser) fillLevel(table *domain.SignalTable, level int, block string) {
	var kept []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isDenied(line) {
			continue
		}
		if _, isRegion := domain.ParseRegion(strings.TrimSuffix(line, ":")); isRegion {
			continue
		}
		kept = append(kept, regionLabelRe.ReplaceAllString(line, ""))
	}

	var (
		places  []string
		byGroup = make(map[domain.Region][]string)
	)
	for _, tok := range locations.SplitTopLevel(strings.Join(kept, ", ")) {
		tok = strings.TrimSpace(strings.TrimPrefix(tok, "and "))
		if tok == "" {
			continue
		}
		places = append(places, tok)
		if region, ok := p.classifier.Classify(tok); ok {
			byGroup[region] = append(byGroup[region], tok)
		}
	}

	if len(byGroup) == 0 {
		if len(places) > 0 {
			table.Set(level, domain.Luzon, strings.Join(places, ", "))
		}
		return
	}
	for _, region := range domain.Regions {
		if names := byGroup[region]; len(names) > 0 {
			table.Set(level, region, strings.Join(names, ", "))
		}
	}
}

func isDenied(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range deniedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return boilerplateRe.MatchString(line)
}
