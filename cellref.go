package geochem

import (
	"fmt"
	"strings"
)

// CellRef represents a single cell reference in an Excel workbook.
type CellRef struct {
	Sheet string // sheet name (empty = unspecified)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "BULK1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s

	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	cellPart = strings.ReplaceAll(cellPart, "$", "")
	if cellPart == "" {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, row, err := parseCellName(cellPart)
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	return CellRef{Sheet: sheet, Row: row, Col: col}, nil
}

// parseCellName parses "A1" into col=0, row=0.
func parseCellName(name string) (col, row int, err error) {
	if len(name) == 0 {
		return 0, 0, fmt.Errorf("empty cell name")
	}

	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 || i == len(name) {
		return 0, 0, fmt.Errorf("invalid cell name: %q", name)
	}

	colStr := name[:i]
	rowStr := name[i:]

	col, err = NameToCol(colStr)
	if err != nil {
		return 0, 0, err
	}

	rowNum := 0
	for _, ch := range rowStr {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("invalid row in cell name: %q", name)
		}
		rowNum = rowNum*10 + int(ch-'0')
	}
	if rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row number in cell name: %q", name)
	}

	return col, rowNum - 1, nil // convert 1-based row to 0-based
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef as "BULK1!C9" or "C9" if no sheet.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return c.Sheet + "!" + name
	}
	return name
}

// CellName returns just the cell part like "C9" without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + fmt.Sprintf("%d", c.Row+1)
}

// RowName returns the 1-based Excel row number as text, like "9".
func (c CellRef) RowName() string {
	return fmt.Sprintf("%d", c.Row+1)
}

// ColName returns the Excel column name, like "C".
func (c CellRef) ColName() string {
	return ColToName(c.Col)
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColToName(col int) string {
	result := ""
	col++ // convert to 1-based for algorithm
	for col > 0 {
		col-- // adjust for 0-indexed letter
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// Span is a half-open range of row or column indexes: Start inclusive,
// Stop exclusive.
type Span struct {
	Start int
	Stop  int
}

// Len returns the number of indexes in the span.
func (s Span) Len() int {
	if s.Stop < s.Start {
		return 0
	}
	return s.Stop - s.Start
}

// Empty reports whether the span covers no indexes.
func (s Span) Empty() bool { return s.Len() == 0 }

// Contains reports whether i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.Stop }
