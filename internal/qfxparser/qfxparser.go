// Package qfxparser parses OFX/QFX statement exports (bank, credit-card and
// investment shaped) into the normalized statement model.
//
// Parsing is strict first: the raw tree is validated against the schema
// points real institutions are known to violate, repaired at most once, and
// re-validated. A document that still fails after the single repair attempt
// is rejected as malformed; there is no further retry, so adversarial input
// cannot loop the repairer.
package qfxparser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"regexp"
	"strings"

	"fjacquet/qfx-ledger/internal/fileutils"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/ofxtree"
	"fjacquet/qfx-ledger/internal/parsererror"

	"gopkg.in/xmlpath.v2"
)

const parserName = "QFX"

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// acctIDRe probes raw content for an account identifier without a full
// parse; institutions mask identifiers, so only the trailing characters are
// meaningful.
var acctIDRe = regexp.MustCompile(`ACCTID>([\w\-|]+)`)

// ContentHasAcctIDSuffix reports whether the raw OFX content mentions an
// account identifier ending with the given suffix. Used by importers as a
// cheap pre-check before committing to a full parse.
func ContentHasAcctIDSuffix(content, suffix string) bool {
	for _, match := range acctIDRe.FindAllStringSubmatch(content, -1) {
		if strings.HasSuffix(match[1], suffix) {
			log.Debug("Found account id suffix in OFX content",
				logging.Field{Key: logging.FieldSuffix, Value: suffix})
			return true
		}
	}
	return false
}

// ParseFile parses one OFX file into a StatementList.
func ParseFile(filePath string) (*models.StatementList, error) {
	log.Debug("Parsing OFX file", logging.Field{Key: logging.FieldFile, Value: filePath})

	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Parse(data, filePath)
}

// Parse parses raw OFX document bytes into a StatementList. filePath is used
// for error context only.
func Parse(data []byte, filePath string) (*models.StatementList, error) {
	doc, err := decodeDocument(data, filePath)
	if err != nil {
		return nil, err
	}

	list, err := transformDocument(doc, filePath)
	if err != nil {
		return nil, err
	}

	log.Info("Parsed OFX file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(list.Statements)})
	return list, nil
}

// LoadStatement parses the file and returns the statement whose account
// identifier ends with the given suffix. The second return value reports
// whether a statement matched; no match is a normal negative result.
func LoadStatement(filePath, acctIDSuffix string) (models.AccountStatement, bool, error) {
	list, err := ParseFile(filePath)
	if err != nil {
		return nil, false, err
	}
	statement, ok := list.FindByAcctIDSuffix(acctIDSuffix)
	return statement, ok, nil
}

// decodeDocument runs the parse -> validate -> repair -> re-validate cycle
// and decodes the surviving tree into typed aggregates.
func decodeDocument(data []byte, filePath string) (*ofxDocument, error) {
	root, err := ofxtree.Parse(data)
	if err != nil {
		return nil, &parsererror.DocumentMalformedError{FilePath: filePath, Err: err}
	}

	if err := ofxtree.Validate(root); err != nil {
		log.Warn("Strict validation failed, attempting repair",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldError, Value: err})
		ofxtree.Repair(root)
		if err := ofxtree.Validate(root); err != nil {
			return nil, &parsererror.DocumentMalformedError{FilePath: filePath, Err: err}
		}
		log.Debug("Repaired OFX document", logging.Field{Key: logging.FieldFile, Value: filePath})
	}

	var doc ofxDocument
	if err := xml.Unmarshal(ofxtree.MarshalXML(root), &doc); err != nil {
		var variantErr *parsererror.UnsupportedTransactionVariantError
		if errors.As(err, &variantErr) {
			return nil, variantErr
		}
		return nil, &parsererror.DocumentMalformedError{FilePath: filePath, Err: err}
	}
	return &doc, nil
}

// ValidateFormat checks whether a file looks like an OFX/QFX document. For
// v2 XML exports the document is probed with XPath; v1 SGML exports are
// recognized by their header markers.
func ValidateFormat(filePath string) (bool, error) {
	if !fileutils.FileExists(filePath) {
		return false, nil
	}
	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return false, err
	}

	content := strings.ToUpper(string(data))
	if strings.HasPrefix(strings.TrimSpace(content), "<?XML") {
		root, err := xmlpath.Parse(bytes.NewReader(data))
		if err != nil {
			return false, nil
		}
		return xmlpath.MustCompile("/OFX").Exists(root), nil
	}

	return strings.Contains(content, "OFXHEADER") || strings.Contains(content, "<OFX>"), nil
}
