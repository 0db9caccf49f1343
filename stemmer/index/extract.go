package index

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// md only parses; nothing is rendered, so the renderer options are left default
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		meta.Meta,
	),
)

// extractMarkdown returns the front-matter title and the plain text of a
// markdown source.
func extractMarkdown(source []byte) (title, plain string) {
	context := parser.NewContext()
	docNode := md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	metaData := meta.Get(context)
	if v, ok := metaData["title"]; ok && v != nil {
		title = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return title, ExtractPlainText(docNode, source)
}

// ExtractPlainText walks the AST and returns a clean string of all text content
func ExtractPlainText(node ast.Node, source []byte) string {
	var out strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindText:
			t := n.(*ast.Text)
			out.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				out.WriteString(" ")
			}
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			l := n.Lines().Len()
			for i := 0; i < l; i++ {
				line := n.Lines().At(i)
				out.Write(line.Value(source))
			}
			out.WriteString(" ")
		case ast.KindParagraph, ast.KindHeading, ast.KindListItem:
			// blocks never run together
			if out.Len() > 0 {
				out.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(out.String())
}

// extractDocument turns raw file content into a title and plain text
// according to the file extension.
func extractDocument(path string, source []byte) (title, plain string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		title, plain = extractMarkdown(source)
	default:
		plain = string(bytes.TrimSpace(source))
	}
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return title, plain
}
