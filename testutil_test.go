package geochem

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// bulkColumn is one result type column of a test worksheet.
type bulkColumn struct {
	resultType string
	metadata   []string // one value per metadata type, "" = blank
	results    []string // one value per subsample row, "" = blank
}

// bulkSheet describes a test analysis worksheet. The zero value renders as a
// lone heading row.
type bulkSheet struct {
	headings      []string // subsample axis headings
	metadataTypes []string
	subsamples    [][]string // one row of identity values per subsample
	columns       []bulkColumn
}

// namedSheet pairs a worksheet name with its content.
type namedSheet struct {
	name string
	data bulkSheet
}

// cellName renders 0-based coordinates as "A1" style references.
func cellName(row, col int) string {
	return ColToName(col) + strconv.Itoa(row+1)
}

// buildWorkbook creates an in-memory workbook with the given analysis
// worksheets, laid out per the analysis table convention.
func buildWorkbook(t *testing.T, sheets ...namedSheet) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for _, s := range sheets {
		_, err := f.NewSheet(s.name)
		require.NoError(t, err)
		writeBulkSheet(t, f, s.name, s.data)
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	return f
}

// writeBulkSheet renders one analysis worksheet: heading row, metadata type
// rows, then subsample rows with result values.
func writeBulkSheet(t *testing.T, f *excelize.File, sheet string, data bulkSheet) {
	t.Helper()

	set := func(row, col int, value string) {
		if value == "" {
			return
		}
		require.NoError(t, f.SetCellValue(sheet, cellName(row, col), value))
	}

	metaCol := len(data.headings)

	// Heading row
	for col, h := range data.headings {
		set(0, col, h)
	}
	set(0, metaCol, "METADATA_TYPE")
	for i, c := range data.columns {
		set(0, metaCol+1+i, c.resultType)
	}

	// Metadata type rows
	for i, mt := range data.metadataTypes {
		set(1+i, metaCol, mt)
		for j, c := range data.columns {
			if i < len(c.metadata) {
				set(1+i, metaCol+1+j, c.metadata[i])
			}
		}
	}

	// Subsample rows
	subStart := 1 + len(data.metadataTypes)
	for i, sub := range data.subsamples {
		for col, v := range sub {
			set(subStart+i, col, v)
		}
		for j, c := range data.columns {
			if i < len(c.results) {
				set(subStart+i, metaCol+1+j, c.results[i])
			}
		}
	}
}

const tillSurvey = "2011, Till sampling survey, Hall Peninsula. Canada-Nunavut Geoscience Office"

// testRegistry returns a registry with the till samples the default bulk
// fixtures reference.
func testRegistry() *StaticRegistry {
	return NewStaticRegistry(
		Sample{Survey: tillSurvey, Station: "11TIAT001", Earthmat: "11TIAT001A", Name: "11TIAT001"},
		Sample{Survey: tillSurvey, Station: "11TIAT024", Earthmat: "11TIAT024A", Name: "11TIAT024"},
		Sample{Survey: tillSurvey, Station: "12TIAT138", Earthmat: "12TIAT138A", Name: "12TIAT138"},
		Sample{Survey: tillSurvey, Station: "12TIAT139", Earthmat: "12TIAT139A", Name: "12TIAT139"},
	)
}

var testMetadataTypes = []string{
	"Method", "Threshold", "Unit", "Fraction_min", "Fraction_max", "Year", "Lab_analysis",
}

func spectroMetadata() []string {
	return []string{"SP64 Series X-Rite Spectrophotometer", "", "", "0", "2mm", "2013", "GSC Sedimentology"}
}

func laserMetadata() []string {
	return []string{"laser particle size analyzer and Camsizer & Lecotrac LT100", "", "pct", "0", "30cm", "2013", "GSC Sedimentology"}
}

// bulk1Sheet is the default first fixture worksheet: two subsamples, seven
// metadata types, three result type columns.
func bulk1Sheet() bulkSheet {
	return bulkSheet{
		headings:      []string{"SAMPLE", "SUBSAMPLE"},
		metadataTypes: append([]string(nil), testMetadataTypes...),
		subsamples: [][]string{
			{"11TIAT001", "11TIAT001A01"},
			{"11TIAT024", "11TIAT024A01"},
		},
		columns: []bulkColumn{
			{resultType: "Soil_Munsell", metadata: spectroMetadata(), results: []string{"2.5Y 6/4", "2.5Y 5/4"}},
			{resultType: "Colour_Description", metadata: spectroMetadata(), results: []string{"light yellowish brown", "light olive brown"}},
			{resultType: "W_peb_bulk", metadata: laserMetadata(), results: []string{"7.256", "22.173"}},
		},
	}
}

func bulk2Sheet() bulkSheet {
	return bulkSheet{
		headings:      []string{"SAMPLE", "SUBSAMPLE"},
		metadataTypes: append([]string(nil), testMetadataTypes...),
		subsamples: [][]string{
			{"12TIAT138", "12TIAT138A01"},
			{"12TIAT139", "12TIAT139A01"},
		},
		columns: []bulkColumn{
			{resultType: "Soil_Munsell", metadata: spectroMetadata(), results: []string{"2.5Y 6/4", "2.5Y 5/4"}},
			{resultType: "Colour_Description", metadata: spectroMetadata(), results: []string{"light yellowish brown", "light olive brown"}},
			{resultType: "W_peb_bulk", metadata: laserMetadata(), results: []string{"12.699", "22.173"}},
		},
	}
}

// parseBulk builds a workbook from the given sheets and parses it with the
// default registry.
func parseBulk(t *testing.T, sheets ...namedSheet) (*Workbook, error) {
	t.Helper()
	f := buildWorkbook(t, sheets...)
	defer f.Close()
	return NewParser(testRegistry()).ParseWorkbook(f, "BULK.xlsx")
}

// requireKind asserts that err is a *Error of the given kind and returns it.
func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, "error: %v", err)
	return e
}

// collectResults drains a workbook's result stream.
func collectResults(wb *Workbook) []Result {
	var results []Result
	for it := wb.Results(); it.Next(); {
		results = append(results, it.Result())
	}
	return results
}
