package site

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/KaramelBytes/docsgen-cli/internal/parser"
)

const dateLayout = "2006-01-02"

// RenderOptions carries everything Render needs besides the documents.
type RenderOptions struct {
	Title     string
	Subtitle  string
	Lang      string
	Styles    string
	Converter parser.Converter
}

// Render builds the complete, self-contained HTML page for docs.
// The first document of the first category starts selected.
func Render(docs []Document, opts RenderOptions) (string, error) {
	if opts.Converter == nil {
		return "", errors.New("render: markdown converter required")
	}
	index := BuildIndex(docs)

	var sidebar, content strings.Builder
	first := true
	for _, cat := range index {
		name := html.EscapeString(cat.Name)
		sidebar.WriteString("<div class=\"sidebar-category\">\n")
		fmt.Fprintf(&sidebar, "<div class=\"sidebar-category-title\" data-target=\"category-%s\">%s</div>\n", attr(cat.ID), name)
		fmt.Fprintf(&sidebar, "<div class=\"sidebar-files\" id=\"category-%s\">\n", attr(cat.ID))
		for i, doc := range cat.Documents {
			id := attr(cat.DocumentID(i))
			body, err := opts.Converter.Convert([]byte(doc.Content))
			if err != nil {
				return "", fmt.Errorf("render %s: %w", doc.Path, err)
			}
			active := ""
			if first {
				active = " active"
				first = false
			}
			fmt.Fprintf(&sidebar, "<div class=\"sidebar-file%s\" data-target=\"content-%s\">%s</div>\n", active, id, html.EscapeString(doc.Title))

			fmt.Fprintf(&content, "<div class=\"file-content-wrapper%s\" id=\"content-%s\">\n", active, id)
			content.WriteString("<div class=\"file-header\">\n")
			fmt.Fprintf(&content, "<h1 class=\"file-title\">%s</h1>\n", html.EscapeString(doc.Title))
			content.WriteString("<div class=\"file-meta\">\n")
			fmt.Fprintf(&content, "<span class=\"file-category\">%s</span>\n", name)
			fmt.Fprintf(&content, "<span class=\"file-date\">%s</span>\n", doc.Date.Format(dateLayout))
			fmt.Fprintf(&content, "<span class=\"file-path\">%s</span>\n", html.EscapeString(doc.Path))
			content.WriteString("</div>\n</div>\n")
			content.WriteString("<div class=\"file-content\">\n")
			content.WriteString(body)
			content.WriteString("</div>\n</div>\n")
		}
		sidebar.WriteString("</div>\n</div>\n")
	}

	mainHTML := content.String()
	if index.Len() == 0 {
		mainHTML = emptyState
	}

	var page strings.Builder
	fmt.Fprintf(&page, pageHead, attr(opts.Lang), html.EscapeString(opts.Title), opts.Styles)
	page.WriteString("<body>\n<div class=\"container\">\n<nav class=\"sidebar\">\n")
	page.WriteString("<div class=\"sidebar-header\">\n")
	fmt.Fprintf(&page, "<h1>📚 %s</h1>\n", html.EscapeString(opts.Title))
	if opts.Subtitle != "" {
		fmt.Fprintf(&page, "<div class=\"subtitle\">%s</div>\n", html.EscapeString(opts.Subtitle))
	}
	page.WriteString("</div>\n")
	page.WriteString(sidebar.String())
	page.WriteString("</nav>\n<main class=\"main-content\">\n")
	page.WriteString(mainHTML)
	page.WriteString("</main>\n</div>\n")
	page.WriteString(pageScript)
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

func attr(s string) string {
	return html.EscapeString(s)
}

const emptyState = `<div class="empty-state">
<h2>No documents</h2>
<p>Add markdown files to the docs folder.</p>
</div>
`

const pageHead = `<!DOCTYPE html>
<html lang="%s">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
%s
</style>
</head>
`

const pageScript = `<script>
(function () {
  function showFile(targetId, nav) {
    document.querySelectorAll('.file-content-wrapper').forEach(function (el) {
      el.classList.remove('active');
    });
    document.querySelectorAll('.sidebar-file').forEach(function (el) {
      el.classList.remove('active');
    });
    var target = document.getElementById(targetId);
    if (target) {
      target.classList.add('active');
    }
    nav.classList.add('active');
  }

  function toggleCategory(targetId, title) {
    var list = document.getElementById(targetId);
    if (list) {
      list.classList.toggle('collapsed');
    }
    title.classList.toggle('collapsed');
  }

  document.querySelectorAll('.sidebar-file').forEach(function (el) {
    el.addEventListener('click', function () {
      showFile(el.getAttribute('data-target'), el);
    });
  });
  document.querySelectorAll('.sidebar-category-title').forEach(function (el) {
    el.addEventListener('click', function () {
      toggleCategory(el.getAttribute('data-target'), el);
    });
  });
})();
</script>
`
