// Package geochem parses and validates geochemical analysis workbooks.
//
// An analysis workbook contains one or more worksheets with the following
// layout, where the number of subsample columns, metadata type rows and
// result type columns is inferred from the worksheet content itself:
//
//	|----------|-------------|-----|-------------------|-----------------|---------------|-----|---------------|
//	| SAMPLE   | SUBSAMPLE   | ... | SUB...SUBSAMPLE   | METADATA_TYPE   | result_type_1 | ... | result_type_y |
//	|----------|-------------|-----|-------------------|-----------------|---------------|-----|---------------|
//	|          |             |     |                   | metadata_type_1 | metadata_1_1  | ... | metadata_1_y  |
//	|          |             |     |                   | ...             | ...           | ... | ...           |
//	|          |             |     |                   | metadata_type_z | metadata_z_1  | ... | metadata_z_y  |
//	|----------|-------------|-----|-------------------|-----------------|---------------|-----|---------------|
//	| sample_1 | subsample_1 | ... | sub...subsample_1 |                 | result_1_1    | ... | result_1_y    |
//	| ...      | ...         | ... | ...               |                 | ...           | ... | ...           |
//	| sample_x | subsample_x | ... | sub...subsample_x |                 | result_x_1    | ... | result_x_y    |
//	|----------|-------------|-----|-------------------|-----------------|---------------|-----|---------------|
//
// A Parser loads every worksheet of a workbook, resolves its geometry,
// validates it against the integrity rules (unique subsamples, unique
// metadata types, unique result type / metadata set pairs, known samples,
// empty structural regions) and then checks that no subsample / result type /
// metadata set combination is claimed by more than one worksheet.
//
// On success the workbook yields one Result per subsample row and result
// type column via a single-pass iterator:
//
//	parser := geochem.NewParser(registry)
//	wb, err := parser.OpenWorkbook("BULK.xlsx")
//	if err != nil {
//	    // err is a *geochem.Error naming the workbook, worksheet and cell
//	}
//	for it := wb.Results(); it.Next(); {
//	    r := it.Result()
//	    // store r
//	}
//
// Sample names are resolved through a SampleRegistry, which callers populate
// before parsing (typically from a separate sample listing).
package geochem
