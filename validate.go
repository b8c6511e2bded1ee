package geochem

import (
	"sort"
	"strconv"
	"strings"
)

// worksheet is the parsed, validated form of one analysis worksheet: the
// normalized grid, its resolved geometry, and the derived axis values the
// cross-worksheet check and the result stream both consume.
type worksheet struct {
	name string
	grid *Grid
	geom Geometry

	subsamples    []subsampleRow
	metadataTypes []string
	resultCols    []resultColumn
}

// subsampleRow is one validated subsample: its grid row, its full identity
// key (sample name first), and the resolved registry sample.
type subsampleRow struct {
	row    int
	key    []string
	sample Sample
}

// resultColumn is one validated result type / metadata set column. metadata
// holds one value per worksheet metadata type, in row order, "" for absent.
type resultColumn struct {
	col        int
	resultType string
	metadata   []string
	pairKey    string // worksheet-independent identity, see crossKey
}

// validateWorksheet checks the worksheet in strict order — subsample rows,
// metadata types, result type / metadata set columns, structural empty
// region — and fails on the first violation. The derived values collected
// along the way double as the uniqueness indexes.
func validateWorksheet(grid *Grid, geom Geometry, workbook, sheet string, reg SampleRegistry) (*worksheet, error) {
	ws := &worksheet{name: sheet, grid: grid, geom: geom}

	if err := ws.validateSubsamples(workbook, reg); err != nil {
		return nil, err
	}
	if err := ws.validateMetadataTypes(workbook); err != nil {
		return nil, err
	}
	if err := ws.validateResultColumns(workbook); err != nil {
		return nil, err
	}
	if err := ws.validateEmptyRegion(workbook); err != nil {
		return nil, err
	}
	return ws, nil
}

func (ws *worksheet) validateSubsamples(workbook string, reg SampleRegistry) error {
	seen := make(map[string]int, ws.geom.SubsampleRows.Len()) // key -> first grid row

	for row := ws.geom.SubsampleRows.Start; row < ws.geom.SubsampleRows.Stop; row++ {
		key := make([]string, 0, ws.geom.SubsampleCols.Len())
		for col := ws.geom.SubsampleCols.Start; col < ws.geom.SubsampleCols.Stop; col++ {
			v, ok := ws.grid.Cell(row, col)
			if !ok {
				return &Error{
					Kind:      MissingSubsampleValue,
					Workbook:  workbook,
					Worksheet: ws.name,
					Ref:       NewCellRef(ws.name, row, col),
				}
			}
			key = append(key, v)
		}

		sample, ok := reg.LookupByName(key[0])
		if !ok {
			return &Error{
				Kind:      UnknownSample,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, row, 0),
				Value:     key[0],
			}
		}

		joined := joinKey(key)
		if other, dup := seen[joined]; dup {
			return &Error{
				Kind:      DuplicateSubsample,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, row, 0),
				OtherRef:  NewCellRef(ws.name, other, 0),
			}
		}
		seen[joined] = row

		ws.subsamples = append(ws.subsamples, subsampleRow{row: row, key: key, sample: sample})
	}
	return nil
}

func (ws *worksheet) validateMetadataTypes(workbook string) error {
	seen := make(map[string]int, ws.geom.MetadataTypeRows.Len()) // name -> first grid row

	for row := ws.geom.MetadataTypeRows.Start; row < ws.geom.MetadataTypeRows.Stop; row++ {
		name, ok := ws.grid.Cell(row, ws.geom.MetadataTypeCol)
		if !ok {
			return &Error{
				Kind:      MissingMetadataType,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, row, ws.geom.MetadataTypeCol),
			}
		}
		if other, dup := seen[name]; dup {
			return &Error{
				Kind:      DuplicateMetadataType,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, row, ws.geom.MetadataTypeCol),
				OtherRef:  NewCellRef(ws.name, other, ws.geom.MetadataTypeCol),
				Value:     name,
			}
		}
		seen[name] = row

		ws.metadataTypes = append(ws.metadataTypes, name)
	}
	return nil
}

func (ws *worksheet) validateResultColumns(workbook string) error {
	seen := make(map[string]int, ws.geom.ResultTypeCols.Len()) // identity -> first grid column

	for col := ws.geom.ResultTypeCols.Start; col < ws.geom.ResultTypeCols.Stop; col++ {
		resultType, ok := ws.grid.Cell(0, col)
		if !ok {
			return &Error{
				Kind:      MissingResultType,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, 0, col),
			}
		}

		metadata := make([]string, 0, ws.geom.MetadataTypeRows.Len())
		for row := ws.geom.MetadataTypeRows.Start; row < ws.geom.MetadataTypeRows.Stop; row++ {
			v, _ := ws.grid.Cell(row, col)
			metadata = append(metadata, v)
		}

		// Within-worksheet identity is the result type plus the ordered
		// metadata value tuple, absent values included.
		identity := joinKey(append([]string{resultType}, metadata...))
		if other, dup := seen[identity]; dup {
			return &Error{
				Kind:      DuplicateResultTypeMetadataSet,
				Workbook:  workbook,
				Worksheet: ws.name,
				Ref:       NewCellRef(ws.name, 0, col),
				OtherRef:  NewCellRef(ws.name, 0, other),
			}
		}
		seen[identity] = col

		ws.resultCols = append(ws.resultCols, resultColumn{
			col:        col,
			resultType: resultType,
			metadata:   metadata,
			pairKey:    crossKey(resultType, ws.metadataTypes, metadata),
		})
	}
	return nil
}

// validateEmptyRegion checks the rectangle bounded by the metadata type rows
// and the subsample columns, which must hold no values.
func (ws *worksheet) validateEmptyRegion(workbook string) error {
	for row := ws.geom.MetadataTypeRows.Start; row < ws.geom.MetadataTypeRows.Stop; row++ {
		for col := ws.geom.SubsampleCols.Start; col < ws.geom.SubsampleCols.Stop; col++ {
			if ws.grid.has(row, col) {
				return &Error{
					Kind:      NonEmptyRegion,
					Workbook:  workbook,
					Worksheet: ws.name,
					Ref:       NewCellRef(ws.name, row, col),
				}
			}
		}
	}
	return nil
}

// joinKey builds a collision-free key from ordered text parts.
func joinKey(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, ",")
}

// crossKey builds the worksheet-independent identity of a result type /
// metadata set column: the result type plus the present metadata values
// keyed and sorted by type name, so worksheets listing the same metadata
// types in a different row order still collide.
func crossKey(resultType string, types, values []string) string {
	pairs := make([]string, 0, len(types))
	for i, typ := range types {
		if i < len(values) && values[i] != "" {
			pairs = append(pairs, strconv.Quote(typ)+"="+strconv.Quote(values[i]))
		}
	}
	sort.Strings(pairs)
	return strconv.Quote(resultType) + "|" + strings.Join(pairs, ",")
}
