// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fjacquet/qfx-ledger/internal/logging"
)

// BaseParser provides common functionality for parser implementations.
// Parsers embed it to inherit logger handling:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser with the provided logger.
// If logger is nil, the default logger is used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger. Passing nil is a no-op.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}
