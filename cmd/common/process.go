// Package common contains shared functionality for command handlers
package common

import (
	"io"
	"os"

	"fjacquet/qfx-ledger/internal/fileutils"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/parser"
)

// OpenOutput returns the writer commands should emit their result to. An
// empty path means stdout; the returned close function is a no-op in that
// case.
func OpenOutput(outputFile string) (io.Writer, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := fileutils.CreateFile(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// RequireInput fails fast when the input flag is missing or the file does
// not exist.
func RequireInput(inputFile string, log logging.Logger) {
	if inputFile == "" {
		log.Fatal("No input file given, use --input")
	}
	if !fileutils.FileExists(inputFile) {
		log.Fatal("Input file does not exist: " + inputFile)
	}
}

// ValidateInput runs the parser's format check on the input file when the
// validate flag is set.
func ValidateInput(p parser.StatementParser, inputFile string, validate bool, log logging.Logger) {
	if !validate {
		return
	}
	p.SetLogger(log)
	log.Info("Validating format...")
	valid, err := p.ValidateFormat(inputFile)
	if err != nil {
		log.WithError(err).Fatal("Error validating file")
	}
	if !valid {
		log.Fatal("The file is not in a valid format")
	}
	log.Info("Validation successful.")
}
