package internal

import "fmt"

// RetrievalError is a failed HTTP fetch of one abstract.
type RetrievalError struct {
	ContractID int
	Status     int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("retrieve abstract %d: status %d", e.ContractID, e.Status)
	}
	return fmt.Sprintf("retrieve abstract %d: %v", e.ContractID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// StructuralParseError means the raw text does not have the expected
// shape: wrong segment count, missing header column, short row.
type StructuralParseError struct {
	Msg string
}

func (e *StructuralParseError) Error() string { return "structural parse: " + e.Msg }

// FormatError is a single field that failed numeric or date coercion.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: %s %q", e.Field, e.Value)
}

// IntegrityError means two parts of one abstract disagree, e.g. the
// bidder sub-table and the bid column count imply different bidder
// counts.
type IntegrityError struct {
	Msg string
}

func (e *IntegrityError) Error() string { return "integrity: " + e.Msg }

func Structuralf(format string, args ...any) error {
	return &StructuralParseError{Msg: fmt.Sprintf(format, args...)}
}

func Integrityf(format string, args ...any) error {
	return &IntegrityError{Msg: fmt.Sprintf(format, args...)}
}
