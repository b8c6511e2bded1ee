package geochem

// Fixed headings of the subsample and metadata type axes.
const (
	headingSample       = "SAMPLE"
	headingSubsample    = "SUBSAMPLE"
	headingSubPrefix    = "SUB"
	headingMetadataType = "METADATA_TYPE"
)

// Geometry holds the resolved axis extents of one analysis worksheet. It is
// computed once per worksheet and never mutated; all downstream code
// addresses cells through these ranges instead of re-deriving them.
//
// Row 0 is always the heading row. MetadataTypeRows run from row 1 to the
// first subsample row; SubsampleRows extend through the last grid row, so no
// populated row can exist below them. A partially populated trailing row is
// a subsample row with missing values, and a value beside the metadata type
// axis is a NonEmptyRegion violation, not a re-framing of the axes.
type Geometry struct {
	SubsampleCols    Span // identity columns, width >= 2, starting at column 0
	MetadataTypeCol  int  // single column immediately after SubsampleCols
	MetadataTypeRows Span // rows between the heading row and the first subsample row
	ResultTypeCols   Span // columns after MetadataTypeCol to the last grid column
	SubsampleRows    Span // first populated subsample row through the last grid row
}

// resolveGeometry infers the worksheet geometry from the heading row and the
// subsample columns, in strict order: fixed headings, SUB-prefix induction,
// metadata type column, result type columns, subsample rows, metadata rows.
func resolveGeometry(g *Grid, workbook, sheet string) (Geometry, error) {
	headingErr := func(col int, expected string) error {
		v, _ := g.Cell(0, col)
		return &Error{
			Kind:      HeadingMismatch,
			Workbook:  workbook,
			Worksheet: sheet,
			Ref:       NewCellRef(sheet, 0, col),
			Value:     v,
			Expected:  expected,
		}
	}

	if v, _ := g.Cell(0, 0); v != headingSample {
		return Geometry{}, headingErr(0, headingSample)
	}
	if v, _ := g.Cell(0, 1); v != headingSubsample {
		return Geometry{}, headingErr(1, headingSubsample)
	}

	// Each further subsample column repeats the previous heading with an
	// extra SUB prefix: SUBSUBSAMPLE, SUBSUBSUBSAMPLE, ... The first column
	// that breaks the chain ends the axis.
	stop := 2
	for col := 2; col < g.Cols(); col++ {
		prev, _ := g.Cell(0, col-1)
		h, ok := g.Cell(0, col)
		if !ok || h != headingSubPrefix+prev {
			break
		}
		stop++
	}
	geom := Geometry{SubsampleCols: Span{Start: 0, Stop: stop}}

	geom.MetadataTypeCol = geom.SubsampleCols.Stop
	if v, _ := g.Cell(0, geom.MetadataTypeCol); v != headingMetadataType {
		return Geometry{}, headingErr(geom.MetadataTypeCol, headingMetadataType)
	}

	geom.ResultTypeCols = Span{Start: geom.MetadataTypeCol + 1, Stop: g.Cols()}

	// The metadata type axis ends at the last populated metadata-type cell.
	metaStop := 1
	for row := 1; row < g.Rows(); row++ {
		if g.has(row, geom.MetadataTypeCol) {
			metaStop = row + 1
		}
	}

	// Subsample rows start at the first populated identity cell below the
	// metadata type axis. Without one, the span is empty and sits at the end
	// of the grid. Identity cells beside the metadata type axis are left to
	// the empty-region check.
	subStart := g.Rows()
	if subStart < metaStop {
		subStart = metaStop
	}
scan:
	for row := metaStop; row < g.Rows(); row++ {
		for col := geom.SubsampleCols.Start; col < geom.SubsampleCols.Stop; col++ {
			if g.has(row, col) {
				subStart = row
				break scan
			}
		}
	}
	geom.SubsampleRows = Span{Start: subStart, Stop: g.Rows()}

	geom.MetadataTypeRows = Span{Start: 1, Stop: subStart}

	return geom, nil
}

// ResultCount returns the number of results the geometry spans: one per
// subsample row and result type column.
func (geom Geometry) ResultCount() int {
	return geom.SubsampleRows.Len() * geom.ResultTypeCols.Len()
}
