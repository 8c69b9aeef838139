package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/KaramelBytes/docsgen-cli/internal/logging"
	"github.com/KaramelBytes/docsgen-cli/internal/utils"
)

// docsPattern selects markdown files at any depth below the docs directory.
const docsPattern = "**.md"

// Watcher regenerates the page whenever the README or a docs markdown file changes.
type Watcher struct {
	gen     *Generator
	log     logging.Logger
	docs    glob.Glob
	readme  string
	docsDir string

	// OnGenerate, when set, is called after every pass with its outcome.
	OnGenerate func(Result, error)
}

// NewWatcher builds a Watcher for gen. A nil logger discards output.
func NewWatcher(gen *Generator, log logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.NoOp()
	}
	g, err := glob.Compile(docsPattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compile watch pattern: %w", err)
	}
	cfg := gen.Config()
	return &Watcher{
		gen:     gen,
		log:     log,
		docs:    g,
		readme:  filepath.Clean(cfg.ReadmePath()),
		docsDir: filepath.Clean(cfg.DocsDir()),
	}, nil
}

// Run subscribes to filesystem events, generates once, then regenerates on every
// relevant event until ctx is cancelled. Passes never overlap. Failed passes and
// watcher errors are logged and the loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return wrapCommandError(err, "start file watcher", codeWatchFailed)
	}
	defer fsw.Close()

	root := filepath.Dir(w.readme)
	if err := fsw.Add(root); err != nil {
		return wrapCommandError(fmt.Errorf("watch %s: %w", root, err), "start file watcher", codeWatchFailed)
	}
	if err := w.watchDocs(fsw); err != nil {
		return wrapCommandError(err, "start file watcher", codeWatchFailed)
	}
	w.log.Info("watching for changes", "readme", w.readme, "docs", filepath.Join(w.docsDir, docsPattern))

	w.generate()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(fsw, ev) {
				w.log.Info("change detected", "op", ev.Op.String(), "path", w.gen.Config().Rel(ev.Name))
				w.generate()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("file watcher error", "error", err)
		}
	}
}

// handle updates the subscriptions for ev and reports whether it requires a new pass.
func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if name == w.readme {
		return true
	}
	if name == w.docsDir {
		if ev.Has(fsnotify.Create) {
			if err := w.addTree(fsw, name); err != nil {
				w.log.Error("watch new directory", "path", name, "error", err)
			}
		}
		return true
	}
	if ev.Has(fsnotify.Create) && strings.HasPrefix(w.docsDir, name+string(filepath.Separator)) {
		if err := w.watchDocs(fsw); err != nil {
			w.log.Error("watch new directory", "path", name, "error", err)
		}
		return utils.DirExists(w.docsDir)
	}
	rel, ok := w.relToDocs(name)
	if !ok {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, name); err != nil {
				w.log.Error("watch new directory", "path", name, "error", err)
			}
			// files may have landed before the directory was subscribed
			return true
		}
	}
	if !w.docs.Match(rel) {
		return false
	}
	return !w.gen.Excluded(filepath.Base(name))
}

func (w *Watcher) relToDocs(name string) (string, bool) {
	rel, err := filepath.Rel(w.docsDir, name)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// watchDocs subscribes the docs tree. While the docs directory does not exist
// its nearest existing ancestor is watched so its creation is seen.
func (w *Watcher) watchDocs(fsw *fsnotify.Watcher) error {
	if !utils.DirExists(w.docsDir) {
		dir := filepath.Dir(w.docsDir)
		for !utils.DirExists(dir) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return nil
			}
			dir = parent
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.log.Debug("docs directory missing, watching ancestor", "docs", w.docsDir, "dir", dir)
	}
	// the docs directory may have appeared while the ancestor was being added
	return w.addTree(fsw, w.docsDir)
}

// addTree subscribes dir and all directories below it. A missing dir is not an error.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) generate() {
	res, err := w.gen.Generate()
	if err != nil {
		w.log.Error("generation failed", "error", err)
	}
	if w.OnGenerate != nil {
		w.OnGenerate(res, err)
	}
}
