package site

import (
	"errors"

	"github.com/KaramelBytes/docsgen-cli/internal/config"
	"github.com/KaramelBytes/docsgen-cli/internal/logging"
	"github.com/KaramelBytes/docsgen-cli/internal/parser"
	"github.com/KaramelBytes/docsgen-cli/internal/theme"
	"github.com/KaramelBytes/docsgen-cli/internal/utils"
)

// Result describes one completed generation pass.
type Result struct {
	Output string
	Count  int
	Theme  string
}

// Generator runs scan, render and write for one configuration.
type Generator struct {
	cfg       config.Config
	exclude   *Excluder
	themes    *theme.Store
	converter parser.Converter
	log       logging.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithThemeStore replaces the stylesheet source.
func WithThemeStore(s *theme.Store) Option {
	return func(g *Generator) { g.themes = s }
}

// WithConverter replaces the markdown converter.
func WithConverter(c parser.Converter) Option {
	return func(g *Generator) { g.converter = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator validates cfg and wires the default collaborators: embedded themes
// (or cfg.StylesDir when set) and a goldmark converter.
func NewGenerator(cfg config.Config, opts ...Option) (*Generator, error) {
	exclude, err := NewExcluder(cfg.ExcludeFiles())
	if err != nil {
		return nil, wrapValidationError(err, "invalid exclude pattern", codeExcludeInvalid)
	}
	g := &Generator{cfg: cfg, exclude: exclude}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logging.NoOp()
	}
	if g.themes == nil {
		if dir := cfg.StylesDir(); dir != "" {
			g.themes = theme.Dir(dir)
		} else {
			g.themes = theme.Embedded()
		}
	}
	if g.converter == nil {
		g.converter = parser.NewMarkdown(parser.MarkdownOptions{HighlightStyle: cfg.HighlightStyle()})
	}
	return g, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() config.Config { return g.cfg }

// Excluded reports whether a docs-folder file name is excluded.
func (g *Generator) Excluded(name string) bool { return g.exclude.Excluded(name) }

// Scan collects the documents of the project.
func (g *Generator) Scan() ([]Document, error) {
	docs, err := NewScanner(g.cfg, g.exclude, g.log).Scan()
	if err != nil {
		return nil, wrapCommandError(err, "scan markdown files", codeScanFailed)
	}
	return docs, nil
}

// Build scans and renders the page without touching the output file.
func (g *Generator) Build() (string, Result, error) {
	sheet, err := g.themes.Load(g.cfg.Theme())
	if err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return "", Result{}, wrapNotFoundError(err, "theme stylesheet not found", codeThemeNotFound)
		}
		return "", Result{}, wrapCommandError(err, "load theme stylesheet", codeThemeRead)
	}
	if sheet.Fallback {
		g.log.Warn("theme not found, using default", "theme", g.cfg.Theme(), "fallback", sheet.Name)
	}

	docs, err := g.Scan()
	if err != nil {
		return "", Result{}, err
	}

	page, err := Render(docs, RenderOptions{
		Title:     g.cfg.SiteTitle(),
		Subtitle:  g.cfg.SiteSubtitle(),
		Lang:      g.cfg.Lang(),
		Styles:    sheet.CSS,
		Converter: g.converter,
	})
	if err != nil {
		return "", Result{}, wrapCommandError(err, "render documentation page", codeRenderFailed)
	}
	return page, Result{Output: g.cfg.OutputFile(), Count: len(docs), Theme: sheet.Name}, nil
}

// Generate builds the page and replaces the output file. On any error the
// previous output is left as it was.
func (g *Generator) Generate() (Result, error) {
	page, res, err := g.Build()
	if err != nil {
		return Result{}, err
	}
	if err := utils.SafeWriteFile(res.Output, []byte(page)); err != nil {
		return Result{}, wrapCommandError(err, "write output file", codeWriteFailed)
	}
	g.log.Info("documentation generated", "output", g.cfg.Rel(res.Output), "files", res.Count, "theme", res.Theme)
	return res, nil
}
