// Package parsererror defines the error taxonomy of the OFX import pipeline.
//
// All errors here are fatal for the document being processed: the pipeline
// never produces a partial statement, because silently dropping transactions
// would under-report money movements. "No statement matched this account" is
// deliberately not an error; see models.StatementList.FindByAcctIDSuffix.
package parsererror

import "fmt"

// DocumentMalformedError indicates that a document could not be parsed even
// after the single repair attempt.
type DocumentMalformedError struct {
	FilePath string
	Err      error
}

func (e *DocumentMalformedError) Error() string {
	return fmt.Sprintf("malformed OFX document '%s': %v", e.FilePath, e.Err)
}

func (e *DocumentMalformedError) Unwrap() error {
	return e.Err
}

// UnsupportedDocumentShapeError indicates that the document contains neither
// bank/credit-card nor investment message sets. The shape is never guessed
// from partial data.
type UnsupportedDocumentShapeError struct {
	FilePath string
}

func (e *UnsupportedDocumentShapeError) Error() string {
	return fmt.Sprintf("unsupported OFX document shape in '%s': no bank, credit-card or investment statements", e.FilePath)
}

// UnsupportedTransactionVariantError indicates an investment transaction
// element that is not in the known variant set.
type UnsupportedTransactionVariantError struct {
	Variant string
}

func (e *UnsupportedTransactionVariantError) Error() string {
	return fmt.Sprintf("unsupported investment transaction variant '%s'", e.Variant)
}

// UnresolvedSecurityError indicates an investment transaction referencing a
// security identifier that does not appear in the document's security list.
type UnresolvedSecurityError struct {
	SecurityID string
}

func (e *UnresolvedSecurityError) Error() string {
	return fmt.Sprintf("security id '%s' is not present in the document security list", e.SecurityID)
}

// ParseError represents a failure to extract a required field.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a structural validation failure on the raw
// document tree, before aggregate decoding.
type ValidationError struct {
	Element string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for element <%s>: %s", e.Element, e.Reason)
}
