package site

import "time"

// Document is one parsed markdown source. Values are not modified after Scan builds them.
type Document struct {
	// Path is relative to the project root, slash separated.
	Path     string
	Title    string
	Category string
	// Date orders documents, newest first.
	Date time.Time
	// Content is the markdown body without its frontmatter.
	Content string
}
