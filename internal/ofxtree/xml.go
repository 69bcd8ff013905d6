package ofxtree

import (
	"strings"
)

// MarshalXML renders the tree as well-formed XML, suitable for decoding
// into typed aggregates with encoding/xml. Text and child elements are both
// emitted when present, matching what the tree preserved.
func MarshalXML(root *Node) []byte {
	var b strings.Builder
	writeNode(&b, root)
	return []byte(b.String())
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	b.WriteByte('>')
	if n.Text != "" {
		b.WriteString(escape(n.Text))
	}
	for _, child := range n.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escape(value string) string {
	return escaper.Replace(value)
}
