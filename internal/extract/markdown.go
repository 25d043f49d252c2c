package extract

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor flattens Markdown uploads to plain text using
// goldmark AST parsing, so headings, lists, code and tables survive as
// readable text rather than raw markup.
type MarkdownExtractor struct {
	parser goldmark.Markdown
}

// NewMarkdownExtractor creates a new MarkdownExtractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Extract parses the Markdown content and returns its flattened text.
func (e *MarkdownExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	if len(data) == 0 {
		return "", ErrNoText
	}

	reader := text.NewReader(data)
	doc := e.parser.Parser().Parse(reader)

	var sb strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			breakParagraph(&sb)
			sb.WriteString(extractNodeText(node, data))
			sb.WriteString("\n\n")
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			segment := node.Segment
			sb.Write(segment.Value(data))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteString("\n")
			}
			return ast.WalkContinue, nil

		case *ast.String:
			sb.Write(node.Value)
			return ast.WalkContinue, nil

		case *ast.CodeBlock:
			breakParagraph(&sb)
			writeLines(&sb, node, data)
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			breakParagraph(&sb)
			writeLines(&sb, node, data)
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			breakParagraph(&sb)
			return ast.WalkContinue, nil

		case *ast.ListItem:
			if !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteString("\n")
			}
			sb.WriteString("- ")
			return ast.WalkContinue, nil

		default:
			// Table rows surface as "cell | cell" lines
			kindName := n.Kind().String()
			if kindName == "TableRow" || kindName == "TableHeader" {
				if !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteString("\n")
				}
				sb.WriteString(extractTableRowText(n, data))
				sb.WriteString("\n")
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
	})

	result := normalizeText(sb.String())
	if result == "" {
		return "", ErrNoText
	}
	return result, nil
}

// breakParagraph inserts a blank-line separator unless the builder is
// empty or already ends with one.
func breakParagraph(sb *strings.Builder) {
	s := sb.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		sb.WriteString("\n")
		return
	}
	sb.WriteString("\n\n")
}

// writeLines writes a node's raw source lines.
func writeLines(sb *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(content))
	}
}

// extractNodeText extracts text content from a node and its children.
func extractNodeText(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			textBuilder.Write(segment.Value(content))
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// extractTableRowText extracts text from a table row, formatting cells
// with pipe separators.
func extractTableRowText(row ast.Node, content []byte) string {
	var rowBuilder strings.Builder
	cellCount := 0

	_ = ast.Walk(row, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if strings.Contains(node.Kind().String(), "TableCell") {
			cellText := strings.TrimSpace(extractNodeText(node, content))
			if cellCount > 0 {
				rowBuilder.WriteString(" | ")
			}
			rowBuilder.WriteString(cellText)
			cellCount++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return rowBuilder.String()
}
