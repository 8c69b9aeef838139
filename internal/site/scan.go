package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/docsgen-cli/internal/config"
	"github.com/KaramelBytes/docsgen-cli/internal/logging"
	"github.com/KaramelBytes/docsgen-cli/internal/parser"
	"github.com/KaramelBytes/docsgen-cli/internal/utils"
)

// Fallbacks for the root README when its frontmatter omits them.
const (
	ReadmeTitle    = "README"
	ReadmeCategory = "Root"
)

// Scanner collects the README and docs-folder markdown files of a project.
type Scanner struct {
	cfg     config.Config
	exclude *Excluder
	log     logging.Logger
}

// NewScanner builds a Scanner. A nil logger discards output.
func NewScanner(cfg config.Config, exclude *Excluder, log logging.Logger) *Scanner {
	if log == nil {
		log = logging.NoOp()
	}
	return &Scanner{cfg: cfg, exclude: exclude, log: log}
}

// Scan returns the root README (if any) and the non-excluded *.md files directly
// inside the docs directory, newest first. Ties keep README-then-listing order.
// Any unreadable file fails the whole scan.
func (s *Scanner) Scan() ([]Document, error) {
	var docs []Document

	readme := s.cfg.ReadmePath()
	if utils.FileExists(readme) {
		doc, err := s.readDocument(readme, ReadmeTitle, ReadmeCategory)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	dir := s.cfg.DocsDir()
	if utils.DirExists(dir) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read docs dir %s: %w", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !parser.IsMarkdown(name) {
				continue
			}
			if s.exclude.Excluded(name) {
				s.log.Debug("skipping excluded file", "file", name)
				continue
			}
			path := filepath.Join(dir, name)
			// follows symlinks
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", s.cfg.Rel(path), err)
			}
			if !info.Mode().IsRegular() {
				s.log.Debug("skipping non-regular file", "file", name)
				continue
			}
			doc, err := s.readDocument(path, strings.TrimSuffix(name, ".md"), s.cfg.DefaultCategory())
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Date.After(docs[j].Date)
	})
	return docs, nil
}

func (s *Scanner) readDocument(path, fallbackTitle, fallbackCategory string) (Document, error) {
	rel := s.cfg.Rel(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", rel, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", rel, err)
	}
	meta, body, err := parser.ParseFrontMatter(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", rel, err)
	}

	doc := Document{
		Path:     rel,
		Title:    orElse(meta.Title, fallbackTitle),
		Category: orElse(meta.Category, fallbackCategory),
		Content:  string(body),
	}
	doc.Date, err = documentDate(meta, info.ModTime())
	if err != nil {
		s.log.Warn("ignoring frontmatter date, using modification time", "file", rel, "error", err)
	}
	return doc, nil
}

// documentDate prefers the frontmatter date and falls back to mtime. The error
// reports an unusable frontmatter value; the returned time is still valid.
func documentDate(meta parser.FrontMatter, modTime time.Time) (time.Time, error) {
	ts, ok, err := meta.Time()
	if err != nil || !ok {
		return modTime, err
	}
	return ts, nil
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
