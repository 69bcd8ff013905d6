package ofxtree

import "strings"

// Repair applies the known institution fix-ups to the tree and returns it.
//
// Two defects are corrected: SEVERITY values whose casing varies by
// institution are uppercased, and the payee NAME element that some
// institutions place out of schema order is moved to the end of its
// transaction block. Absent elements are skipped silently; Repair is
// idempotent and never fails.
func Repair(root *Node) *Node {
	for _, severity := range root.FindAll(tagSeverity) {
		severity.Text = strings.ToUpper(severity.Text)
	}

	for _, trn := range root.FindAll(tagStmtTrn) {
		name := trn.Child(tagName)
		if name == nil {
			continue
		}
		trn.RemoveChild(name)
		trn.Children = append(trn.Children, name)
	}

	return root
}
