package docs

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry in a section's heading tree.
type Heading struct {
	Level int
	Text  string
}

// Outline parses the section markdown and returns its headings in
// document order.
func Outline(s Section) []Heading {
	source := []byte(s.Content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, Heading{Level: h.Level, Text: headingText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// headingText collects the plain text of a heading, including inline
// code spans.
func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
