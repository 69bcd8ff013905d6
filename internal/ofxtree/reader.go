package ofxtree

import (
	"fmt"
	"strings"
)

// Parse reads a raw OFX document into an element tree. The v1 SGML header
// (KEY:VALUE lines) and the v2 XML prolog are skipped; parsing starts at the
// <OFX> element, with or without attributes on it. Tokenizer failures are
// terminal: a document that does not form a tree cannot be repaired.
func Parse(data []byte) (*Node, error) {
	content := string(data)

	idx := indexTagFold(content, "OFX")
	if idx < 0 {
		return nil, fmt.Errorf("no <OFX> element found")
	}

	root, err := parseElements(content[idx:])
	if err != nil {
		return nil, err
	}
	return root, nil
}

// indexTagFold finds the byte offset of the <name> start tag ignoring case,
// so that lowercased exports from sloppy institutions still locate the body.
// The tag may carry attributes, as v2 XML roots do (<OFX xmlns="...">).
func indexTagFold(content, name string) int {
	upper := strings.ToUpper(content)
	marker := "<" + name
	pos := 0
	for {
		idx := strings.Index(upper[pos:], marker)
		if idx < 0 {
			return -1
		}
		idx += pos
		after := idx + len(marker)
		if after < len(upper) {
			switch upper[after] {
			case '>', ' ', '\t', '\r', '\n':
				return idx
			}
		}
		pos = idx + 1
	}
}

// closingTagNames collects every element name that appears as an explicit
// closing tag. OFX v1 SGML closes aggregates explicitly and leaves leaf
// elements unclosed, so a name with a closing tag somewhere in the document
// is never an implicit-close leaf. In v2 XML everything closes explicitly
// and the set covers all names.
func closingTagNames(body string) map[string]bool {
	names := make(map[string]bool)
	pos := 0
	for {
		idx := strings.Index(body[pos:], "</")
		if idx < 0 {
			return names
		}
		pos += idx + 2
		end := strings.IndexByte(body[pos:], '>')
		if end < 0 {
			return names
		}
		names[normalizeTagName(body[pos:pos+end])] = true
		pos += end + 1
	}
}

func parseElements(body string) (*Node, error) {
	var (
		root  *Node
		stack []*Node
		text  strings.Builder
	)

	closed := closingTagNames(body)
	openLeaf := false

	takeText := func() string {
		value := strings.TrimSpace(text.String())
		text.Reset()
		return value
	}

	// closeOpenLeaf ends the implicit-close leaf on top of the stack, if
	// any. A leaf ends where the next tag begins, whether or not it carried
	// a value: a bare <MEMO> must not adopt its following siblings.
	closeOpenLeaf := func(value string) {
		if !openLeaf {
			return
		}
		top := stack[len(stack)-1]
		if value != "" {
			top.Text = unescape(value)
		}
		stack = stack[:len(stack)-1]
		openLeaf = false
	}

	pos := 0
	for pos < len(body) {
		open := strings.IndexByte(body[pos:], '<')
		if open < 0 {
			break
		}
		text.WriteString(body[pos : pos+open])
		pos += open

		end := strings.IndexByte(body[pos:], '>')
		if end < 0 {
			return nil, fmt.Errorf("unterminated tag at offset %d", pos)
		}
		tag := body[pos+1 : pos+end]
		pos += end + 1

		switch {
		case strings.HasPrefix(tag, "?"), strings.HasPrefix(tag, "!"):
			// Prolog, processing instruction or comment.
			text.Reset()

		case strings.HasPrefix(tag, "/"):
			value := takeText()
			if openLeaf {
				closeOpenLeaf(value)
			} else if value != "" && len(stack) > 0 {
				stack[len(stack)-1].Text = unescape(value)
			}
			name := normalizeTagName(tag[1:])
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Name == name {
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("unexpected closing tag </%s>", name)
			}
			if len(stack) == 0 && root != nil {
				return root, nil
			}

		default:
			closeOpenLeaf(takeText())
			selfClosing := strings.HasSuffix(tag, "/")
			name := normalizeTagName(strings.TrimSuffix(tag, "/"))
			if name == "" {
				return nil, fmt.Errorf("empty tag name at offset %d", pos)
			}
			node := &Node{Name: name}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			} else {
				return nil, fmt.Errorf("unexpected second root element <%s>", name)
			}
			if !selfClosing {
				stack = append(stack, node)
				openLeaf = !closed[name]
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no elements found")
	}
	return root, nil
}

// normalizeTagName uppercases the element name and strips attributes.
// OFX element names are case-insensitive in the wild.
func normalizeTagName(tag string) string {
	name := strings.TrimSpace(tag)
	if idx := strings.IndexAny(name, " \t\r\n"); idx >= 0 {
		name = name[:idx]
	}
	return strings.ToUpper(name)
}

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescape(value string) string {
	if !strings.Contains(value, "&") {
		return value
	}
	return unescaper.Replace(value)
}
