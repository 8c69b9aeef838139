package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDate is returned by FrontMatter.Time when the date value cannot be interpreted.
var ErrInvalidDate = errors.New("invalid frontmatter date")

// FrontMatter holds the metadata keys docsgen understands. Unknown keys are ignored.
type FrontMatter struct {
	Title    string `yaml:"title" toml:"title"`
	Category string `yaml:"category" toml:"category"`
	// Date is kept raw: YAML yields strings (or time.Time for tagged values),
	// TOML yields native date types.
	Date any `yaml:"date" toml:"date"`
}

var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ParseFrontMatter splits source into its metadata block and markdown body.
// Sources without a metadata block return an empty FrontMatter and the full text.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, formats...)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Category = strings.TrimSpace(meta.Category)
	return meta, body, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// Time interprets the date value. ok is false when no date was given.
// Values without a zone are read as UTC.
func (m FrontMatter) Time() (t time.Time, ok bool, err error) {
	switch v := m.Date.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v, true, nil
	case toml.LocalDate:
		return v.AsTime(time.UTC), true, nil
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateLayouts {
			if parsed, perr := time.ParseInLocation(layout, s, time.UTC); perr == nil {
				return parsed, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	default:
		return time.Time{}, false, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidDate, v, v)
	}
}
