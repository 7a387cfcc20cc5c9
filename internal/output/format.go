// Package output formats the model's answer for the terminal or a file.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Supported formats
const (
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

const wordWrap = 100

// Format renders answer in the requested format. Plain returns it unchanged.
func Format(answer, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPlain:
		return answer, nil
	case FormatMarkdown:
		return renderTerminal(answer)
	case FormatHTML:
		return RenderHTML(answer), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderHTML converts the markdown answer into a standalone HTML fragment.
func RenderHTML(answer string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(answer))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return string(markdown.Render(doc, renderer))
}

func renderTerminal(answer string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(answer)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
