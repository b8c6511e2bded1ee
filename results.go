package geochem

import "slices"

// Result is one analytical value extracted from a workbook: a sample and
// subsample, the result type column that produced it, the column's metadata
// set, and the raw cell text. Results are immutable and owned by the
// consumer.
type Result struct {
	Sample    Sample
	Subsample []string          // subsample key tail, without the sample name
	Type      string            // result type heading
	Metadata  map[string]string // metadata type -> value, present values only
	Value     string            // raw cell text; "" when the result cell is blank
	Worksheet string
	Ref       CellRef // originating cell
}

// ResultIter is a single-pass cursor over a workbook's results, in worksheet
// order, then subsample row order, then result type column order. The
// traversal is not restartable; call Workbook.Results again for a new pass.
//
//	for it := wb.Results(); it.Next(); {
//	    r := it.Result()
//	}
type ResultIter struct {
	sheets []*worksheet
	si     int // current worksheet
	ri     int // current subsample row within worksheet
	ci     int // next result column within row
	cur    Result
}

// Results returns a fresh iterator over every result of the workbook. The
// workbook is already validated, so iteration cannot fail.
func (w *Workbook) Results() *ResultIter {
	return &ResultIter{sheets: w.sheets}
}

// Next advances to the next result. It returns false once the sequence is
// exhausted.
func (it *ResultIter) Next() bool {
	for it.si < len(it.sheets) {
		ws := it.sheets[it.si]
		if it.ri >= len(ws.subsamples) {
			it.si++
			it.ri, it.ci = 0, 0
			continue
		}
		if it.ci >= len(ws.resultCols) {
			it.ri++
			it.ci = 0
			continue
		}

		sub := ws.subsamples[it.ri]
		rc := ws.resultCols[it.ci]
		it.ci++

		value, _ := ws.grid.Cell(sub.row, rc.col)

		metadata := make(map[string]string, len(ws.metadataTypes))
		for i, typ := range ws.metadataTypes {
			if rc.metadata[i] != "" {
				metadata[typ] = rc.metadata[i]
			}
		}

		it.cur = Result{
			Sample:    sub.sample,
			Subsample: slices.Clone(sub.key[1:]),
			Type:      rc.resultType,
			Metadata:  metadata,
			Value:     value,
			Worksheet: ws.name,
			Ref:       NewCellRef(ws.name, sub.row, rc.col),
		}
		return true
	}
	return false
}

// Result returns the result the last call to Next advanced to.
func (it *ResultIter) Result() Result { return it.cur }
