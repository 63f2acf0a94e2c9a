package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_FollowsTheme(t *testing.T) {
	t.Setenv("ROUTE_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	t.Setenv("ROUTE_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestRenderNotes(t *testing.T) {
	t.Setenv("ROUTE_TUI_THEME", "dark")
	if got := renderNotes("   ", 40); got != "" {
		t.Fatalf("blank notes should render empty, got %q", got)
	}
	got := renderNotes("Buy **fresh** eggs", 40)
	if !strings.Contains(got, "fresh") || strings.Contains(got, "**") {
		t.Fatalf("expected rendered markdown, got %q", got)
	}
}
