// ABOUTME: Rendered text extraction approximating the browser's innerText
// ABOUTME: Skips invisible elements and breaks lines at block boundaries

package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Table: true, atom.Tr: true, atom.Ul: true,
}

// InnerText returns the visible text of n's descendants. Runs of
// whitespace collapse to one space, block elements end a line and
// elements carrying the hidden attribute are left out.
func InnerText(n *html.Node) string {
	var b textBuilder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
	return b.String()
}

type textBuilder struct {
	lines []string
	line  strings.Builder
}

func (b *textBuilder) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if skipped[n.DataAtom] || hasAttr(n, "hidden") {
		return
	}
	if n.DataAtom == atom.Br {
		b.breakLine(true)
		return
	}

	block := blocks[n.DataAtom]
	if block {
		b.breakLine(false)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
	if block {
		b.breakLine(false)
	}
}

func (b *textBuilder) text(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && b.line.Len() > 0 {
			b.space()
		}
		return
	}
	if startsWithSpace(s) {
		b.space()
	}
	for i, f := range fields {
		if i > 0 {
			b.space()
		}
		b.line.WriteString(f)
	}
	if endsWithSpace(s) {
		b.space()
	}
}

func (b *textBuilder) space() {
	cur := b.line.String()
	if cur == "" || strings.HasSuffix(cur, " ") {
		return
	}
	b.line.WriteByte(' ')
}

// breakLine ends the current line. Forced breaks keep empty lines.
func (b *textBuilder) breakLine(force bool) {
	cur := strings.TrimSpace(b.line.String())
	b.line.Reset()
	if cur == "" && !force {
		return
	}
	b.lines = append(b.lines, cur)
}

func (b *textBuilder) String() string {
	b.breakLine(false)
	return strings.Join(b.lines, "\n")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\n\r\f") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\n\r\f") != s
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
