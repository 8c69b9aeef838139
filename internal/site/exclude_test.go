package site_test

import (
	"testing"

	"github.com/KaramelBytes/docsgen-cli/internal/site"
)

func TestExcluder(t *testing.T) {
	ex, err := site.NewExcluder([]string{"temp.md", "draft.md", "wip-*", "*.private.md", "notes(1)*"})
	if err != nil {
		t.Fatalf("new excluder: %v", err)
	}
	cases := []struct {
		name string
		want bool
	}{
		{"temp.md", true},
		{"draft.md", true},
		{"drafts.md", false},
		{"wip-setup.md", true},
		{"my-wip-setup.md", true}, // unanchored match
		{"secret.private.md", true},
		{"secretXprivateXmd", false}, // '.' is literal
		{"notes(1)-a.md", true},
		{"notes1-a.md", false}, // parentheses are literal
		{"setup.md", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ex.Excluded(c.name); got != c.want {
				t.Fatalf("Excluded(%q) = %v, want %v", c.name, got, c.want)
			}
		})
	}
}

func TestExcluderEmptyAndNil(t *testing.T) {
	ex, err := site.NewExcluder([]string{""})
	if err != nil {
		t.Fatalf("new excluder: %v", err)
	}
	if ex.Excluded("") || ex.Excluded("a.md") {
		t.Fatalf("empty entries must not exclude anything")
	}
	var none *site.Excluder
	if none.Excluded("a.md") {
		t.Fatalf("nil excluder must not exclude")
	}
}
