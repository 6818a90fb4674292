// Package signals reads the tropical cyclone wind signal table, which appears
// in bulletins either as a region-per-column grid or as stacked text blocks.
package signals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/header"
)

// Layout names which strategy produced a table.
type Layout string

const (
	LayoutColumnar Layout = "columnar"
	LayoutStacked  Layout = "stacked"
	LayoutNone     Layout = "none"
)

// anchorThreshold is the header confidence the table title needs.
const anchorThreshold = 0.8

// headerSearchRows bounds how far below the title the region headers may sit,
// counting the title row itself.
const headerSearchRows = 5

// columnRegions are the island groups that get their own table column.
var columnRegions = []domain.Region{domain.Luzon, domain.Visayas, domain.Mindanao}

var (
	// signalNumberRe finds a signal level in a row's first cell: "3", "TCWS No. 3".
	signalNumberRe = regexp.MustCompile(`\b([1-5])\b`)

	// lineBreakRe matches line breaks inside a cell.
	lineBreakRe = regexp.MustCompile(`[\r\n]+`)
)

// Parser extracts a SignalTable.
type Parser struct {
	aliases    []string
	classifier gazetteer.Classifier
}

// NewParser returns a parser anchoring on the given title aliases and
// classifying stacked-layout places with c.
func NewParser(aliases []string, c gazetteer.Classifier) *Parser {
	return &Parser{aliases: aliases, classifier: c}
}

// Parse tries the columnar layout on g, then the stacked layout on text. The
// first non-empty table wins.
func (p *Parser) Parse(g domain.Grid, text string) (domain.SignalTable, Layout) {
	if table, ok := p.columnar(g); ok {
		return table, LayoutColumnar
	}
	if table, ok := p.stacked(text); ok {
		return table, LayoutStacked
	}
	return domain.SignalTable{}, LayoutNone
}

// columnar reads a grid whose header row names Luzon, Visayas and Mindanao
// and whose following rows start with a signal number.
func (p *Parser) columnar(g domain.Grid) (domain.SignalTable, bool) {
	var table domain.SignalTable

	headerRow, cols, ok := p.findRegionHeader(g)
	if !ok {
		return table, false
	}

	for r := headerRow + 1; r < len(g); r++ {
		if g.RowEmpty(r) {
			continue
		}
		if rowContains(g[r], "HAZARDS") {
			break
		}
		m := signalNumberRe.FindStringSubmatch(g.Cell(r, 0))
		if m == nil {
			continue
		}
		level, _ := strconv.Atoi(m[1])

		for _, region := range columnRegions {
			v := g.Cell(r, cols[region])
			if v == "" || v == "-" || strings.EqualFold(v, "none") {
				continue
			}
			table.Set(level, region, lineBreakRe.ReplaceAllString(v, "; "))
		}
	}
	return table, !table.IsEmpty()
}

// findRegionHeader locates the title cell and then, within the next few rows,
// the row where every column region has been seen.
func (p *Parser) findRegionHeader(g domain.Grid) (int, map[domain.Region]int, bool) {
	for r, row := range g {
		for _, cell := range row {
			if header.Match(cell, p.aliases) <= anchorThreshold {
				continue
			}
			cols := make(map[domain.Region]int, len(columnRegions))
			for k := r; k < len(g) && k < r+headerSearchRows; k++ {
				for c, candidate := range g[k] {
					lower := strings.ToLower(candidate)
					for _, region := range columnRegions {
						if _, seen := cols[region]; !seen && strings.Contains(lower, strings.ToLower(string(region))) {
							cols[region] = c
						}
					}
				}
				if len(cols) == len(columnRegions) {
					return k, cols, true
				}
			}
		}
	}
	return 0, nil, false
}

func rowContains(row []string, s string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToUpper(cell), s) {
			return true
		}
	}
	return false
}
