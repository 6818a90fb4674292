// Package fields pulls key/value pairs out of a reconstructed grid by locating
// header cells and reading the value next to them.
package fields

import (
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/header"
)

// headerThreshold is the match confidence a cell needs to count as a header.
const headerThreshold = 0.7

// strategy reads the value belonging to the header cell at (r, c).
type strategy func(g domain.Grid, r, c int) (string, bool)

// strategies are tried in order; the first hit wins.
var strategies = []strategy{
	fromColonSplit,
	fromRightCell,
	fromCellBelow,
	fromNextRowFirstCell,
}

// Extract scans g in row-major order for header cells matching aliases and
// returns the value found beside the best-scoring one. Equal scores keep the
// earlier header. No header, or no value beside any header, yields an empty
// field.
func Extract(g domain.Grid, aliases []string) domain.Field {
	var best domain.Field
	for r, row := range g {
		for c, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			confidence := header.Match(cell, aliases)
			if confidence <= headerThreshold || confidence <= best.Confidence {
				continue
			}
			if value, ok := valueFor(g, r, c); ok {
				best = domain.NewField(value, confidence)
			}
		}
	}
	return best
}

func valueFor(g domain.Grid, r, c int) (string, bool) {
	for _, s := range strategies {
		if v, ok := s(g, r, c); ok {
			return collapseSpace(v), true
		}
	}
	return "", false
}

// fromColonSplit reads the value after the label colon in "Label: value".
// Colons between digits belong to clock times and are skipped.
func fromColonSplit(g domain.Grid, r, c int) (string, bool) {
	cell := g.Cell(r, c)
	for i := 0; i < len(cell); i++ {
		if cell[i] != ':' || (i > 0 && i+1 < len(cell) && isDigit(cell[i-1]) && isDigit(cell[i+1])) {
			continue
		}
		after := strings.TrimSpace(cell[i+1:])
		return after, after != ""
	}
	return "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func fromRightCell(g domain.Grid, r, c int) (string, bool) {
	v := g.Cell(r, c+1)
	return v, v != ""
}

func fromCellBelow(g domain.Grid, r, c int) (string, bool) {
	v := g.Cell(r+1, c)
	return v, v != ""
}

func fromNextRowFirstCell(g domain.Grid, r, _ int) (string, bool) {
	v := g.Cell(r+1, 0)
	return v, v != ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
