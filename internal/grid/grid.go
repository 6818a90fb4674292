// Package grid rebuilds a table's cell text from detected row and column
// regions and positioned word tokens.
package grid

import (
	"slices"
	"sort"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/tidwall/rtree"
)

// minOverlap is the share of a token's area that must fall inside a cell.
const minOverlap = 0.5

// Split separates detector output into row and column boxes, ignoring other labels.
func Split(detections []domain.DetectedRegion) (rows, cols []domain.Box) {
	for _, d := range detections {
		switch d.Label {
		case domain.LabelTableRow:
			rows = append(rows, d.Bounds())
		case domain.LabelTableColumn:
			cols = append(cols, d.Bounds())
		}
	}
	return rows, cols
}

// Reconstruct builds a len(rows) x len(cols) grid. Rows are ordered top to
// bottom by vertical center, columns left to right by horizontal center, and
// each cell is the intersection of its row and column.
//
// A token goes to the cell holding the largest share of its area, provided
// that share exceeds one half; on equal shares the earliest cell in row-major
// order wins. Tokens with no area are dropped. Cell text is the space-joined
// token texts in input order. No rows or no columns yields an empty grid.
func Reconstruct(rows, cols []domain.Box, tokens []domain.Token) domain.Grid {
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}

	rows = slices.Clone(rows)
	cols = slices.Clone(cols)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CenterY() < rows[j].CenterY() })
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].CenterX() < cols[j].CenterX() })

	nc := len(cols)
	cells := make([]domain.Box, len(rows)*nc)
	var index rtree.RTreeG[int]
	for r, row := range rows {
		for c, col := range cols {
			i := r*nc + c
			cells[i] = row.Intersect(col)
			if cells[i].Area() > 0 {
				index.Insert(cells[i].Min(), cells[i].Max(), i)
			}
		}
	}

	text := make([]strings.Builder, len(cells))
	var candidates []int
	for _, tok := range tokens {
		box := tok.Box()
		area := box.Area()
		if area <= 0 {
			continue
		}

		candidates = candidates[:0]
		index.Search(box.Min(), box.Max(), func(_, _ [2]float64, i int) bool {
			candidates = append(candidates, i)
			return true
		})
		slices.Sort(candidates)

		best, bestRatio := -1, 0.0
		for _, i := range candidates {
			ratio := cells[i].Intersect(box).Area() / area
			if ratio > minOverlap && ratio > bestRatio {
				best, bestRatio = i, ratio
			}
		}
		if best < 0 {
			continue
		}
		if text[best].Len() > 0 {
			text[best].WriteByte(' ')
		}
		text[best].WriteString(tok.Text)
	}

	grid := make(domain.Grid, len(rows))
	for r := range rows {
		grid[r] = make([]string, nc)
		for c := 0; c < nc; c++ {
			grid[r][c] = strings.TrimSpace(text[r*nc+c].String())
		}
	}
	return grid
}

// FromDetections is Split followed by Reconstruct.
func FromDetections(detections []domain.DetectedRegion, tokens []domain.Token) domain.Grid {
	rows, cols := Split(detections)
	return Reconstruct(rows, cols, tokens)
}
