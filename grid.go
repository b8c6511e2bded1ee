package geochem

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a normalized, read-only 2-D arena of optional text cells. Every
// present cell holds a trimmed, non-empty string; excelize has already
// rendered numeric and other native values to their canonical text form.
// Trailing all-empty rows and columns are cropped at load time; interior
// gaps are preserved and validated later.
type Grid struct {
	cells [][]string // "" marks an absent cell
	cols  int
}

// loadGrid reads one worksheet into a Grid. A read failure surfaces as a
// SourceUnreadable error.
func loadGrid(f *excelize.File, workbook, sheet string) (*Grid, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &Error{
			Kind:      SourceUnreadable,
			Workbook:  workbook,
			Worksheet: sheet,
			cause:     err,
		}
	}
	return newGrid(rows), nil
}

// newGrid normalizes raw rows: values are trimmed, empty strings mark absent
// cells, rows are padded to a uniform width, and trailing all-empty rows and
// columns are cropped.
func newGrid(rows [][]string) *Grid {
	lastRow := -1
	lastCol := -1
	for r, row := range rows {
		for c, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if r > lastRow {
				lastRow = r
			}
			if c > lastCol {
				lastCol = c
			}
		}
	}

	g := &Grid{cols: lastCol + 1}
	g.cells = make([][]string, lastRow+1)
	for r := range g.cells {
		cells := make([]string, g.cols)
		for c := 0; c < g.cols && c < len(rows[r]); c++ {
			cells[c] = strings.TrimSpace(rows[r][c])
		}
		g.cells[r] = cells
	}
	return g
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int { return g.cols }

// Cell returns the value at (row, col) and whether it is present. Out-of-range
// coordinates report an absent cell.
func (g *Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.cols {
		return "", false
	}
	v := g.cells[row][col]
	return v, v != ""
}

// has reports whether the cell at (row, col) is present.
func (g *Grid) has(row, col int) bool {
	_, ok := g.Cell(row, col)
	return ok
}
