package site_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/KaramelBytes/docsgen-cli/internal/config"
	"github.com/KaramelBytes/docsgen-cli/internal/site"
	"github.com/KaramelBytes/docsgen-cli/internal/theme"
)

func testThemes() *theme.Store {
	return theme.NewStore(fstest.MapFS{
		"default.css": {Data: []byte("body{--theme:default}")},
		"dark.css":    {Data: []byte("body{--theme:dark}")},
	})
}

func newGenerator(t *testing.T, cfg config.Config, opts ...site.Option) *site.Generator {
	t.Helper()
	opts = append([]site.Option{site.WithThemeStore(testThemes())}, opts...)
	g, err := site.NewGenerator(cfg, opts...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func readOutput(t *testing.T, res site.Result) string {
	t.Helper()
	b, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(b)
}

func TestGenerateScenarioReadmeAndDocs(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "README.md", "---\ntitle: Guide\ncategory: Root\ndate: 2024-01-01\n---\nWelcome.\n", day(2024, 6, 1))
	writeDoc(t, root, "docs/setup.md", "Install steps.\n", day(2024, 2, 1))
	writeDoc(t, root, "docs/draft.md", "DRAFT-SECRET\n", day(2024, 3, 1))

	res, err := newGenerator(t, config.New(root, config.File{})).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("count = %d", res.Count)
	}
	if res.Output != filepath.Join(root, "index.html") {
		t.Fatalf("output = %s", res.Output)
	}
	out := readOutput(t, res)
	if n := strings.Count(out, `class="sidebar-file`); n != res.Count {
		t.Fatalf("nav entries = %d, count = %d", n, res.Count)
	}
	if n := strings.Count(out, `class="file-content-wrapper`); n != res.Count {
		t.Fatalf("content blocks = %d, count = %d", n, res.Count)
	}
	setup := strings.Index(out, `data-target="content-Documentation-0">setup</div>`)
	guide := strings.Index(out, `data-target="content-Root-0">Guide</div>`)
	if setup < 0 || guide < 0 {
		t.Fatalf("missing nav entries (setup=%d guide=%d):\n%s", setup, guide, out)
	}
	if setup > guide {
		t.Fatalf("setup (newer) must precede Guide")
	}
	if strings.Contains(out, "DRAFT-SECRET") || strings.Contains(out, "draft.md") {
		t.Fatalf("excluded draft.md leaked into output")
	}
	if !strings.Contains(out, "body{--theme:default}") {
		t.Fatalf("default stylesheet not inlined")
	}
}

func TestGenerateScenarioEmptyProject(t *testing.T) {
	root := t.TempDir()
	res, err := newGenerator(t, config.New(root, config.File{})).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Count != 0 {
		t.Fatalf("count = %d", res.Count)
	}
	out := readOutput(t, res)
	if !strings.Contains(out, "No documents") || strings.Contains(out, `class="sidebar-file`) {
		t.Fatalf("expected empty-state page")
	}
}

func TestGenerateScenarioUnknownThemeFallsBack(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "docs/a.md", "a\n", day(2024, 1, 1))
	log := &recLogger{}
	cfg := config.New(root, config.File{}).WithOverrides(config.Overrides{Theme: "nonexistent"})
	res, err := newGenerator(t, cfg, site.WithLogger(log)).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Theme != theme.DefaultName {
		t.Fatalf("theme = %s", res.Theme)
	}
	if !strings.Contains(readOutput(t, res), "body{--theme:default}") {
		t.Fatalf("default stylesheet not used")
	}
	if log.count("warn") == 0 {
		t.Fatalf("expected a fallback warning")
	}
}

func TestGenerateSelectedTheme(t *testing.T) {
	root := t.TempDir()
	cfg := config.New(root, config.File{Theme: "dark"})
	res, err := newGenerator(t, cfg).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(readOutput(t, res), "body{--theme:dark}") {
		t.Fatalf("dark stylesheet not used")
	}
}

func TestGenerateStylesDirFromConfig(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "styles/default.css", "body{--theme:disk}", day(2024, 1, 1))
	g, err := site.NewGenerator(config.New(root, config.File{StylesDir: "styles"}))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	res, err := g.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(readOutput(t, res), "body{--theme:disk}") {
		t.Fatalf("on-disk stylesheet not used")
	}
}

func TestGenerateMissingDefaultThemeKeepsPreviousOutput(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "docs/a.md", "a\n", day(2024, 1, 1))
	outPath := writeDoc(t, root, "index.html", "PREVIOUS", day(2024, 1, 1))

	g, err := site.NewGenerator(config.New(root, config.File{Theme: "ocean"}),
		site.WithThemeStore(theme.NewStore(fstest.MapFS{})))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	_, err = g.Generate()
	if err == nil {
		t.Fatalf("expected missing theme error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not-found category, got %v", err)
	}
	b, _ := os.ReadFile(outPath)
	if string(b) != "PREVIOUS" {
		t.Fatalf("previous output was modified: %q", b)
	}
}

func TestGenerateScanFailureKeepsPreviousOutput(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "docs/bad.md", "---\ntitle: [oops\n---\n", day(2024, 1, 1))
	outPath := writeDoc(t, root, "index.html", "PREVIOUS", day(2024, 1, 1))

	_, err := newGenerator(t, config.New(root, config.File{})).Generate()
	if err == nil {
		t.Fatalf("expected scan error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	b, _ := os.ReadFile(outPath)
	if string(b) != "PREVIOUS" {
		t.Fatalf("previous output was modified: %q", b)
	}
}

func TestGenerateInvalidOutputLocation(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "blocker", "file, not dir", day(2024, 1, 1))
	cfg := config.New(root, config.File{OutputFile: "blocker/index.html"})
	if _, err := newGenerator(t, cfg).Generate(); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "README.md", "---\ndate: 2024-01-01\n---\n# Root\n", day(2024, 1, 1))
	writeDoc(t, root, "docs/a.md", "---\ntitle: A\ndate: 2024-02-01\n---\n```go\nfunc a() {}\n```\n", day(2024, 1, 1))
	writeDoc(t, root, "docs/b.md", "---\ncategory: Other Stuff\ndate: 2024-03-01\n---\n- item\n", day(2024, 1, 1))

	g := newGenerator(t, config.New(root, config.File{HighlightStyle: "github"}))
	first, err := g.Generate()
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	a := readOutput(t, first)
	second, err := g.Generate()
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	b := readOutput(t, second)
	if !bytes.Equal([]byte(a), []byte(b)) {
		t.Fatalf("outputs differ between runs")
	}
}

func TestGenerateNavOrderFollowsDates(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "docs/one.md", "1\n", day(2024, 1, 1))
	writeDoc(t, root, "docs/two.md", "2\n", day(2024, 3, 1))
	writeDoc(t, root, "docs/three.md", "3\n", day(2024, 2, 1))

	res, err := newGenerator(t, config.New(root, config.File{})).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := readOutput(t, res)
	iTwo := strings.Index(out, ">two</div>")
	iThree := strings.Index(out, ">three</div>")
	iOne := strings.Index(out, ">one</div>")
	if !(iTwo < iThree && iThree < iOne) {
		t.Fatalf("nav not ordered by date desc: two=%d three=%d one=%d", iTwo, iThree, iOne)
	}
}

func TestGenerateWildcardExclusion(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "docs/keep.md", "keep\n", day(2024, 1, 1))
	writeDoc(t, root, "docs/wip-plan.md", "WIP-SECRET\n", day(2024, 1, 1))
	cfg := config.New(root, config.File{ExcludeFiles: []string{"wip-*"}})
	res, err := newGenerator(t, cfg).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("count = %d", res.Count)
	}
	if strings.Contains(readOutput(t, res), "WIP-SECRET") {
		t.Fatalf("wildcard-excluded file leaked into output")
	}
}
