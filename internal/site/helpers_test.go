package site_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// writeDoc writes content to root/rel and pins its modification time.
func writeDoc(t *testing.T, root, rel, content string, mtime time.Time) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	if !mtime.IsZero() {
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", rel, err)
		}
	}
	return p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recLogger) record(level, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprint(level, " ", msg, args))
}

func (r *recLogger) Debug(msg string, args ...any) { r.record("debug", msg, args...) }
func (r *recLogger) Info(msg string, args ...any)  { r.record("info", msg, args...) }
func (r *recLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args...) }
func (r *recLogger) Error(msg string, args ...any) { r.record("error", msg, args...) }

func (r *recLogger) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lines {
		if len(l) > len(level) && l[:len(level)+1] == level+" " {
			n++
		}
	}
	return n
}
