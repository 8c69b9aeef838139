package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css
var embedded embed.FS

// DefaultName is the theme used when the requested one is missing.
const DefaultName = "default"

const ext = ".css"

// ErrThemeNotFound is returned when neither the requested nor the default stylesheet exists.
var ErrThemeNotFound = errors.New("theme stylesheet not found")

// Stylesheet is a loaded theme.
type Stylesheet struct {
	// Name is the theme that was actually loaded.
	Name string
	CSS  string
	// Fallback is true when the requested theme was missing and DefaultName was used.
	Fallback bool
}

// Store looks up <name>.css files in a filesystem. Nothing is cached: every
// Load reads from the underlying filesystem.
type Store struct {
	fsys fs.FS
}

// NewStore returns a Store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Embedded returns the store of built-in themes.
func Embedded() *Store {
	sub, err := fs.Sub(embedded, "styles")
	if err != nil {
		panic(fmt.Sprintf("theme: embedded styles: %v", err))
	}
	return NewStore(sub)
}

// Dir returns a store reading stylesheets from dir on disk.
func Dir(dir string) *Store {
	return NewStore(os.DirFS(dir))
}

// Load returns the named stylesheet, falling back to DefaultName when it is missing.
func (s *Store) Load(name string) (Stylesheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	css, err := s.read(name)
	if err == nil {
		return Stylesheet{Name: name, CSS: css}, nil
	}
	if !isMissing(err) {
		return Stylesheet{}, fmt.Errorf("read theme %q: %w", name, err)
	}
	if name == DefaultName {
		return Stylesheet{}, fmt.Errorf("%w: %s%s", ErrThemeNotFound, DefaultName, ext)
	}

	css, err = s.read(DefaultName)
	if err != nil {
		if isMissing(err) {
			return Stylesheet{}, fmt.Errorf("%w: neither %s%s nor %s%s", ErrThemeNotFound, name, ext, DefaultName, ext)
		}
		return Stylesheet{}, fmt.Errorf("read theme %q: %w", DefaultName, err)
	}
	return Stylesheet{Name: DefaultName, CSS: css, Fallback: true}, nil
}

// Names lists the available themes, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) read(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", fs.ErrNotExist
	}
	b, err := fs.ReadFile(s.fsys, name+ext)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid)
}
