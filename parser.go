package geochem

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Parser validates analysis workbooks and turns them into result streams.
// A Parser is stateless between workbooks and safe for concurrent use.
type Parser struct {
	registry SampleRegistry
	opts     *Options
}

// NewParser creates a Parser that resolves sample names through reg.
func NewParser(reg SampleRegistry, opts ...Option) *Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Parser{registry: reg, opts: o}
}

// OpenWorkbook opens an xlsx file and parses it as an analysis workbook.
// The workbook name in results and errors is the file's base name.
func (p *Parser) OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %q", path)
	}
	defer f.Close()
	return p.ParseWorkbook(f, filepath.Base(path))
}

// ParseWorkbook loads, resolves and validates every worksheet of f, then
// checks for cross-worksheet duplicates. Worksheets are processed in
// parallel; the first violation in worksheet order is returned, so the same
// workbook always fails with the same error.
func (p *Parser) ParseWorkbook(f *excelize.File, name string) (*Workbook, error) {
	sheetNames := f.GetSheetList()

	sheets := make([]*worksheet, len(sheetNames))
	errs := make([]error, len(sheetNames))

	var g errgroup.Group
	g.SetLimit(p.opts.parallelism)
	for i, sheetName := range sheetNames {
		i, sheetName := i, sheetName
		g.Go(func() error {
			sheets[i], errs[i] = p.parseWorksheet(f, name, sheetName)
			return nil
		})
	}
	// Workers record failures in errs instead of returning them, so the
	// reported error does not depend on scheduling.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	wb := &Workbook{Name: name, sheets: sheets}
	if err := wb.checkCrossWorksheetDuplicates(); err != nil {
		return nil, err
	}

	p.opts.logger.Info("parsed analysis workbook",
		zap.String("workbook", name),
		zap.Int("worksheets", len(sheets)),
		zap.Int("results", wb.ResultCount()),
	)
	return wb, nil
}

// parseWorksheet runs the per-sheet pipeline: grid load, geometry
// resolution, validation.
func (p *Parser) parseWorksheet(f *excelize.File, workbook, sheet string) (*worksheet, error) {
	grid, err := loadGrid(f, workbook, sheet)
	if err != nil {
		return nil, err
	}

	geom, err := resolveGeometry(grid, workbook, sheet)
	if err != nil {
		return nil, err
	}

	p.opts.logger.Debug("resolved worksheet geometry",
		zap.String("workbook", workbook),
		zap.String("worksheet", sheet),
		zap.Int("subsample_columns", geom.SubsampleCols.Len()),
		zap.Int("metadata_types", geom.MetadataTypeRows.Len()),
		zap.Int("result_types", geom.ResultTypeCols.Len()),
		zap.Int("subsamples", geom.SubsampleRows.Len()),
	)

	return validateWorksheet(grid, geom, workbook, sheet, p.registry)
}

// Workbook is a fully validated analysis workbook, ready to stream results.
type Workbook struct {
	Name   string
	sheets []*worksheet
}

// WorksheetNames returns the worksheet names in workbook order.
func (w *Workbook) WorksheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, ws := range w.sheets {
		names[i] = ws.name
	}
	return names
}

// Geometry returns the resolved geometry of the named worksheet.
func (w *Workbook) Geometry(sheet string) (Geometry, bool) {
	for _, ws := range w.sheets {
		if ws.name == sheet {
			return ws.geom, true
		}
	}
	return Geometry{}, false
}

// ResultCount returns the total number of results the workbook will stream:
// one per subsample row and result type column of every worksheet.
func (w *Workbook) ResultCount() int {
	n := 0
	for _, ws := range w.sheets {
		n += len(ws.subsamples) * len(ws.resultCols)
	}
	return n
}

// cellClaim records which worksheet cell first claimed a subsample / result
// type / metadata set combination.
type cellClaim struct {
	worksheet string
	ref       CellRef
}

// checkCrossWorksheetDuplicates indexes every populated result cell of every
// worksheet by its (subsample key, result type / metadata set key) pair in a
// single workbook-wide map. Only populated cells enter the index: a blank
// cell claims nothing, so another worksheet may supply that value. Inserting
// a pair already claimed by another worksheet is a violation naming both
// cells.
func (w *Workbook) checkCrossWorksheetDuplicates() error {
	total := 0
	for _, ws := range w.sheets {
		total += len(ws.subsamples) * len(ws.resultCols)
	}
	claims := make(map[string]cellClaim, total)

	for _, ws := range w.sheets {
		for _, sub := range ws.subsamples {
			subKey := joinKey(sub.key)
			for _, rc := range ws.resultCols {
				if !ws.grid.has(sub.row, rc.col) {
					continue
				}
				pair := subKey + "\x00" + rc.pairKey
				ref := NewCellRef(ws.name, sub.row, rc.col)
				if prior, dup := claims[pair]; dup {
					return &Error{
						Kind:           CrossWorksheetDuplicate,
						Workbook:       w.Name,
						Worksheet:      ws.name,
						Ref:            ref,
						OtherWorksheet: prior.worksheet,
						OtherRef:       prior.ref,
					}
				}
				claims[pair] = cellClaim{worksheet: ws.name, ref: ref}
			}
		}
	}
	return nil
}
