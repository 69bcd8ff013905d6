package ofxtree

import (
	"fmt"

	"fjacquet/qfx-ledger/internal/parsererror"
)

// Elements subject to strict-schema validation. SEVERITY is an enumerated
// uppercase value; NAME must be the last child of its STMTTRN block.
const (
	tagSeverity = "SEVERITY"
	tagStmtTrn  = "STMTTRN"
	tagName     = "NAME"
)

var severityValues = map[string]bool{
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// Validate checks the raw tree against the strict-schema points that
// institutions are known to violate. It returns the first violation found,
// or nil for a clean tree.
func Validate(root *Node) error {
	for _, severity := range root.FindAll(tagSeverity) {
		if !severityValues[severity.Text] {
			return &parsererror.ValidationError{
				Element: tagSeverity,
				Reason:  fmt.Sprintf("value '%s' is not one of INFO, WARN, ERROR", severity.Text),
			}
		}
	}

	for _, trn := range root.FindAll(tagStmtTrn) {
		for i, child := range trn.Children {
			if child.Name == tagName && i != len(trn.Children)-1 {
				return &parsererror.ValidationError{
					Element: tagStmtTrn,
					Reason:  "NAME element must be the last child of the transaction block",
				}
			}
		}
	}

	return nil
}
