package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns a markdown body into an HTML fragment.
type Converter interface {
	Convert(markdown []byte) (string, error)
}

// MarkdownOptions configures the goldmark engine.
type MarkdownOptions struct {
	// HighlightStyle is a chroma style name for fenced code blocks; empty disables highlighting.
	HighlightStyle string
}

// Markdown is a goldmark-backed Converter. Raw HTML in the source is passed
// through untouched: documents come from repository contributors.
type Markdown struct {
	engine goldmark.Markdown
}

// NewMarkdown builds a converter with GFM, footnotes and definition lists enabled.
func NewMarkdown(opts MarkdownOptions) *Markdown {
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	}
	if style := strings.TrimSpace(opts.HighlightStyle); style != "" {
		exts = append(exts, highlighting.NewHighlighting(highlighting.WithStyle(style)))
	}
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert renders markdown into HTML.
func (m *Markdown) Convert(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}

// IsMarkdown reports whether name is a markdown source picked up by the scan.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, ".md")
}
