package domain

import "strings"

// Grid is a reconstructed table: Grid[row][col] is the cell text, "" when no
// token landed in the cell.
type Grid [][]string

// Cell returns the trimmed cell at (r, c), or "" when out of range.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return strings.TrimSpace(g[r][c])
}

// RowEmpty reports whether every cell in row r is blank.
func (g Grid) RowEmpty(r int) bool {
	if r < 0 || r >= len(g) {
		return true
	}
	for _, cell := range g[r] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Text renders the grid as plain text: non-empty cells joined by a space,
// rows joined by a newline.
func (g Grid) Text() string {
	lines := make([]string, len(g))
	for i, row := range g {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		lines[i] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}
