// Package advisory reads the weather advisory rainfall outlook, which lists
// places under red (>200 mm), orange (100-200 mm) and yellow (50-100 mm)
// accumulation bands with a "Today" and a "Tomorrow" column.
package advisory

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/locations"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/rainfall"
)

// Band is a rainfall accumulation band.
type Band int

const (
	Red Band = iota
	Orange
	Yellow
)

func (b Band) String() string {
	switch b {
	case Red:
		return "red"
	case Orange:
		return "orange"
	case Yellow:
		return "yellow"
	}
	return "unknown"
}

var bandRes = []struct {
	band Band
	re   *regexp.Regexp
}{
	{Red, regexp.MustCompile(`(?i)\(?\s*>\s*200\s*mm\s*\)?`)},
	{Orange, regexp.MustCompile(`(?i)\(?\s*100\s*[-–]\s*200\s*mm\s*\)?`)},
	{Yellow, regexp.MustCompile(`(?i)\(?\s*50\s*[-–]\s*100\s*mm\s*\)?`)},
}

const placeName = `[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?`

var (
	// columnBreakRe finds ", and Albay Kalinga": the Today column ends with
	// Albay and the Tomorrow column starts at Kalinga.
	columnBreakRe = regexp.MustCompile(`,\s+and\s+(` + placeName + `)\s+(` + placeName + `)`)

	// trailingGapRe finds ", and Albay -" where the Tomorrow column is empty.
	trailingGapRe = regexp.MustCompile(`,\s+and\s+(` + placeName + `)\s*[-\s]{2,}`)

	impactsRe = regexp.MustCompile(`(?i)potential\s+impacts`)
)

// Warnings lists the places under each band in first-seen order.
type Warnings struct {
	Red    []string `json:"red"`
	Orange []string `json:"orange"`
	Yellow []string `json:"yellow"`
}

func (w *Warnings) band(b Band) *[]string {
	switch b {
	case Red:
		return &w.Red
	case Orange:
		return &w.Orange
	default:
		return &w.Yellow
	}
}

// IsEmpty reports whether no band lists any place.
func (w Warnings) IsEmpty() bool {
	return len(w.Red) == 0 && len(w.Orange) == 0 && len(w.Yellow) == 0
}

// Table maps red, orange and yellow onto rainfall levels 1, 2 and 3.
func (w Warnings) Table(c gazetteer.Classifier) domain.RainfallTable {
	var table domain.RainfallTable
	for i, places := range [][]string{w.Red, w.Orange, w.Yellow} {
		table[i] = rainfall.Group(c, places)
	}
	return table
}

type indicator struct {
	band       Band
	start, end int
}

// Parse splits text at the band indicators and reads the Today column of
// each segment with tok.
func Parse(text string, tok *locations.Tokenizer) Warnings {
	var w Warnings
	if text == "" {
		return w
	}

	var found []indicator
	for _, b := range bandRes {
		for _, loc := range b.re.FindAllStringIndex(text, -1) {
			found = append(found, indicator{band: b.band, start: loc[0], end: loc[1]})
		}
	}
	slices.SortStableFunc(found, func(a, b indicator) int { return a.end - b.end })

	for i, ind := range found {
		end := len(text)
		if i+1 < len(found) {
			end = max(found[i+1].start, ind.end)
		}
		dst := w.band(ind.band)
		for _, place := range tok.Split(todayColumn(text[ind.end:end])) {
			if !slices.Contains(*dst, place) {
				*dst = append(*dst, place)
			}
		}
	}
	return w
}

// todayColumn returns the part of a band segment that belongs to the Today
// column. A segment starting with a dash has an empty Today column.
func todayColumn(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" || strings.HasPrefix(segment, "-") {
		return ""
	}

	text := strings.Join(strings.Fields(segment), " ")
	if loc := impactsRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	if m := columnBreakRe.FindStringSubmatchIndex(text); m != nil {
		return strings.TrimSpace(text[:m[4]])
	}
	if m := trailingGapRe.FindStringSubmatchIndex(text); m != nil {
		return strings.TrimSpace(text[:m[3]])
	}
	if before, _, ok := strings.Cut(text, " - "); ok {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(text)
}
