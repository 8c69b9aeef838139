package site

import (
	"fmt"
	"regexp"
	"strings"
)

// Excluder decides whether a docs-folder file is skipped.
//
// A name is excluded when it equals one of the configured entries, or when an
// entry containing '*' matches it. In such an entry '*' stands for any run of
// characters, everything else is literal, and the match may occur anywhere in
// the name ("draft*" excludes "my-draft-2.md").
type Excluder struct {
	literals map[string]struct{}
	patterns []*regexp.Regexp
}

// NewExcluder compiles the exclusion entries.
func NewExcluder(entries []string) (*Excluder, error) {
	e := &Excluder{literals: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "*") {
			e.literals[entry] = struct{}{}
			continue
		}
		parts := strings.Split(entry, "*")
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		re, err := regexp.Compile(strings.Join(parts, ".*"))
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", entry, err)
		}
		e.patterns = append(e.patterns, re)
	}
	return e, nil
}

// Excluded reports whether the bare filename name is excluded.
func (e *Excluder) Excluded(name string) bool {
	if e == nil {
		return false
	}
	if _, ok := e.literals[name]; ok {
		return true
	}
	for _, re := range e.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
