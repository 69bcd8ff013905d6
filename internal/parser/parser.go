package parser

import (
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
)

// StatementParser is the interface implemented by statement file parsers.
// Implementations are responsible for understanding a specific input format
// and transforming it into the normalized StatementList, returning the typed
// errors from internal/parsererror on failure.
type StatementParser interface {
	// ParseFile parses a statement file into a StatementList.
	ParseFile(filePath string) (*models.StatementList, error)

	// ValidateFormat reports whether the file looks like this parser's
	// format. A negative result is not an error.
	ValidateFormat(filePath string) (bool, error)

	// SetLogger sets a custom logger for the parser.
	SetLogger(logger logging.Logger)
}
