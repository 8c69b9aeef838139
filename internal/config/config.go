package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/KaramelBytes/docsgen-cli/internal/logging"
)

// FileName is the config file base name looked up in the project root
// (docsgen.yaml, docsgen.json, docsgen.toml, ...).
const FileName = "docsgen"

// Defaults
const (
	DefaultDocsDir        = "docs"
	DefaultOutputFile     = "index.html"
	DefaultTheme          = "default"
	DefaultCategory       = "Documentation"
	DefaultSiteTitle      = "Project Documentation"
	DefaultSiteSubtitle   = "Generated from markdown"
	DefaultLang           = "en"
	DefaultHighlightStyle = "github"
)

// DefaultExcludeFiles are skipped in the docs directory unless configured otherwise.
var DefaultExcludeFiles = []string{"temp.md", "draft.md"}

// File mirrors the keys accepted in the configuration file.
type File struct {
	DocsDir         string   `mapstructure:"docsDir" yaml:"docsDir"`
	ExcludeFiles    []string `mapstructure:"excludeFiles" yaml:"excludeFiles"`
	OutputFile      string   `mapstructure:"outputFile" yaml:"outputFile"`
	Theme           string   `mapstructure:"theme" yaml:"theme"`
	DefaultCategory string   `mapstructure:"defaultCategory" yaml:"defaultCategory"`
	StylesDir       string   `mapstructure:"stylesDir" yaml:"stylesDir"`
	SiteTitle       string   `mapstructure:"siteTitle" yaml:"siteTitle"`
	SiteSubtitle    string   `mapstructure:"siteSubtitle" yaml:"siteSubtitle"`
	Lang            string   `mapstructure:"lang" yaml:"lang"`
	HighlightStyle  string   `mapstructure:"highlightStyle" yaml:"highlightStyle"`
	LogLevel        string   `mapstructure:"logLevel" yaml:"logLevel"`
	LogFormat       string   `mapstructure:"logFormat" yaml:"logFormat"`
}

// Config is the resolved, immutable configuration for one invocation.
// Paths are absolute.
type Config struct {
	root            string
	docsDir         string
	outputFile      string
	stylesDir       string
	excludeFiles    []string
	theme           string
	defaultCategory string
	siteTitle       string
	siteSubtitle    string
	lang            string
	highlightStyle  string
	logLevel        string
	logFormat       string
	source          string
}

// Overrides holds explicit caller-supplied options. Empty fields are ignored.
type Overrides struct {
	Theme    string
	LogLevel string
}

func (c Config) Root() string            { return c.root }
func (c Config) DocsDir() string         { return c.docsDir }
func (c Config) OutputFile() string      { return c.outputFile }
func (c Config) StylesDir() string       { return c.stylesDir }
func (c Config) Theme() string           { return c.theme }
func (c Config) DefaultCategory() string { return c.defaultCategory }
func (c Config) SiteTitle() string       { return c.siteTitle }
func (c Config) SiteSubtitle() string    { return c.siteSubtitle }
func (c Config) Lang() string            { return c.lang }
func (c Config) HighlightStyle() string  { return c.highlightStyle }
func (c Config) LogLevel() string        { return c.logLevel }
func (c Config) LogFormat() string       { return c.logFormat }

// Source is the config file that was read, or "" when defaults were used.
func (c Config) Source() string { return c.source }

// ExcludeFiles returns a copy of the exclusion patterns.
func (c Config) ExcludeFiles() []string {
	return append([]string(nil), c.excludeFiles...)
}

// ReadmePath is the root README location.
func (c Config) ReadmePath() string { return filepath.Join(c.root, "README.md") }

// Rel returns path relative to the project root, falling back to path itself.
func (c Config) Rel(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// WithOverrides returns a copy of c with the non-empty overrides applied.
func (c Config) WithOverrides(o Overrides) Config {
	out := c
	out.excludeFiles = c.ExcludeFiles()
	if t := strings.TrimSpace(o.Theme); t != "" {
		out.theme = t
	}
	if l := strings.TrimSpace(o.LogLevel); l != "" {
		out.logLevel = l
	}
	return out
}

// Defaults returns the built-in configuration for root.
func Defaults(root string) Config {
	return fromFile(root, "", defaultFile())
}

// New builds a Config for root from explicit values. Empty fields take their
// defaults; a nil ExcludeFiles means DefaultExcludeFiles.
func New(root string, f File) Config {
	if f.ExcludeFiles == nil {
		f.ExcludeFiles = append([]string(nil), DefaultExcludeFiles...)
	}
	if f.SiteSubtitle == "" {
		f.SiteSubtitle = DefaultSiteSubtitle
	}
	return fromFile(root, "", f)
}

func defaultFile() File {
	return File{
		DocsDir:         DefaultDocsDir,
		ExcludeFiles:    append([]string(nil), DefaultExcludeFiles...),
		OutputFile:      DefaultOutputFile,
		Theme:           DefaultTheme,
		DefaultCategory: DefaultCategory,
		SiteTitle:       DefaultSiteTitle,
		SiteSubtitle:    DefaultSiteSubtitle,
		Lang:            DefaultLang,
		HighlightStyle:  DefaultHighlightStyle,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DOCSGEN")
	v.AutomaticEnv()

	d := defaultFile()
	v.SetDefault("docsDir", d.DocsDir)
	v.SetDefault("excludeFiles", d.ExcludeFiles)
	v.SetDefault("outputFile", d.OutputFile)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("defaultCategory", d.DefaultCategory)
	v.SetDefault("stylesDir", "")
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("siteSubtitle", d.SiteSubtitle)
	v.SetDefault("lang", d.Lang)
	v.SetDefault("highlightStyle", d.HighlightStyle)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("logFormat", d.LogFormat)
	return v
}

// Load resolves configuration for the project at root.
// Precedence: env (DOCSGEN_*) > config file > defaults; apply CLI values with WithOverrides.
// cfgFile selects an explicit file; otherwise docsgen.{yaml,yml,json,toml} is looked up in root.
// A missing file is silent; an unreadable or malformed one is logged and defaults are used.
func Load(root, cfgFile string, log logging.Logger) (Config, error) {
	if log == nil {
		log = logging.NoOp()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("resolve root: %w", err)
	}

	v := newViper()
	if cfgFile != "" {
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(absRoot, cfgFile)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(absRoot)
		v.SetConfigName(FileName)
	}

	source := ""
	if cfgFile != "" && !fileExists(cfgFile) {
		log.Warn("config file not found, using defaults", "path", cfgFile)
		v = newViper()
	} else if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("config file could not be read, using defaults", "error", err)
		}
		// start over so no partially read state leaks into the result
		v = newViper()
	} else {
		source = v.ConfigFileUsed()
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		log.Warn("config values could not be decoded, using defaults", "error", err)
		return Defaults(absRoot), nil
	}
	return fromFile(absRoot, source, f), nil
}

func fromFile(root, source string, f File) Config {
	d := defaultFile()
	c := Config{
		root:            root,
		docsDir:         resolve(root, orDefault(f.DocsDir, d.DocsDir)),
		outputFile:      resolve(root, orDefault(f.OutputFile, d.OutputFile)),
		excludeFiles:    append([]string(nil), f.ExcludeFiles...),
		theme:           orDefault(f.Theme, d.Theme),
		defaultCategory: orDefault(f.DefaultCategory, d.DefaultCategory),
		siteTitle:       orDefault(f.SiteTitle, d.SiteTitle),
		siteSubtitle:    f.SiteSubtitle,
		lang:            orDefault(f.Lang, d.Lang),
		highlightStyle:  strings.TrimSpace(f.HighlightStyle),
		logLevel:        orDefault(f.LogLevel, d.LogLevel),
		logFormat:       orDefault(f.LogFormat, d.LogFormat),
		source:          source,
	}
	if s := strings.TrimSpace(f.StylesDir); s != "" {
		c.stylesDir = resolve(root, s)
	}
	return c
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
