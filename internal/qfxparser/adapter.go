package qfxparser

import (
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/parser"
)

// Adapter implements parser.StatementParser by wrapping the package-level
// functions of qfxparser.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a new adapter for the OFX/QFX parser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// ParseFile implements parser.StatementParser.
func (a *Adapter) ParseFile(filePath string) (*models.StatementList, error) {
	return ParseFile(filePath)
}

// ValidateFormat implements parser.StatementParser.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	return ValidateFormat(filePath)
}
