package geochem

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind identifies one class of workbook integrity violation. The set is
// closed: every error returned by the parser carries exactly one Kind.
type Kind int

const (
	// SourceUnreadable means a worksheet grid could not be loaded at all.
	SourceUnreadable Kind = iota
	// HeadingMismatch means a required fixed heading ("SAMPLE", "SUBSAMPLE",
	// "METADATA_TYPE") is absent or wrong.
	HeadingMismatch
	// MissingSubsampleValue means a subsample row has an empty identity cell.
	MissingSubsampleValue
	// DuplicateSubsample means a subsample key repeats an earlier row.
	DuplicateSubsample
	// UnknownSample means a sample name is not in the sample registry.
	UnknownSample
	// MissingMetadataType means a metadata type cell is empty.
	MissingMetadataType
	// DuplicateMetadataType means a metadata type repeats an earlier row.
	DuplicateMetadataType
	// MissingResultType means a result type heading cell is empty.
	MissingResultType
	// DuplicateResultTypeMetadataSet means a result type / metadata set pair
	// repeats an earlier column.
	DuplicateResultTypeMetadataSet
	// NonEmptyRegion means a structurally-empty region contains a value.
	NonEmptyRegion
	// CrossWorksheetDuplicate means the same subsample / result type /
	// metadata set combination is claimed by two worksheets.
	CrossWorksheetDuplicate
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case SourceUnreadable:
		return "SourceUnreadable"
	case HeadingMismatch:
		return "HeadingMismatch"
	case MissingSubsampleValue:
		return "MissingSubsampleValue"
	case DuplicateSubsample:
		return "DuplicateSubsample"
	case UnknownSample:
		return "UnknownSample"
	case MissingMetadataType:
		return "MissingMetadataType"
	case DuplicateMetadataType:
		return "DuplicateMetadataType"
	case MissingResultType:
		return "MissingResultType"
	case DuplicateResultTypeMetadataSet:
		return "DuplicateResultTypeMetadataSet"
	case NonEmptyRegion:
		return "NonEmptyRegion"
	case CrossWorksheetDuplicate:
		return "CrossWorksheetDuplicate"
	default:
		return "Unknown"
	}
}

// Error is the structured validation error produced by the parser. Every
// error names the workbook, the worksheet and a cell (or row/column)
// reference sufficient to locate the violation.
type Error struct {
	Kind      Kind
	Workbook  string
	Worksheet string
	Ref       CellRef // offending cell; for row-scoped violations, the row's first cell

	Value    string // offending value, where one exists
	Expected string // expected heading, for HeadingMismatch

	// First occurrence, for duplicate violations. OtherWorksheet is set only
	// for CrossWorksheetDuplicate; within-worksheet duplicates reference a
	// cell in the same worksheet.
	OtherWorksheet string
	OtherRef       CellRef

	cause error
}

// Error formats the violation as "[wb:BULK.xlsx][ws:BULK1][C9]: message".
func (e *Error) Error() string {
	return fmt.Sprintf("[wb:%s][ws:%s][%s]: %s", e.Workbook, e.Worksheet, e.Ref.CellName(), e.message())
}

func (e *Error) message() string {
	switch e.Kind {
	case SourceUnreadable:
		return fmt.Sprintf("worksheet could not be read: %v", e.cause)
	case HeadingMismatch:
		return fmt.Sprintf("cell %s must be %q", e.Ref.CellName(), e.Expected)
	case MissingSubsampleValue:
		return fmt.Sprintf("empty value for subsample in row %s", e.Ref.RowName())
	case DuplicateSubsample:
		return fmt.Sprintf("subsample in row %s is a duplicate of row %s", e.Ref.RowName(), e.OtherRef.RowName())
	case UnknownSample:
		return fmt.Sprintf("sample %q in cell %s does not exist in the sample registry", e.Value, e.Ref.CellName())
	case MissingMetadataType:
		return fmt.Sprintf("empty value for metadata type in cell %s", e.Ref.CellName())
	case DuplicateMetadataType:
		return fmt.Sprintf("metadata type %q in row %s is a duplicate of row %s", e.Value, e.Ref.RowName(), e.OtherRef.RowName())
	case MissingResultType:
		return fmt.Sprintf("empty value for result type in cell %s", e.Ref.CellName())
	case DuplicateResultTypeMetadataSet:
		return fmt.Sprintf("result type and metadata set of column %s is a duplicate of column %s", e.Ref.ColName(), e.OtherRef.ColName())
	case NonEmptyRegion:
		return fmt.Sprintf("cell %s must be empty", e.Ref.CellName())
	case CrossWorksheetDuplicate:
		return fmt.Sprintf("subsample/result type/metadata set combination for cell %s was already used in cell %s of worksheet %s",
			e.Ref.CellName(), e.OtherRef.CellName(), e.OtherWorksheet)
	default:
		return "integrity violation"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is matches on Kind so callers can probe with a bare-kind sentinel:
//
//	errors.Is(err, &geochem.Error{Kind: geochem.UnknownSample})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the violation kind from err. The second return is false if
// err does not wrap a *geochem.Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
