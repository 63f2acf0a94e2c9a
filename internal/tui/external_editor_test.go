package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{"vim -u 'foo bar'", []string{"vim", "-u", "foo bar"}},
		{`vim -c "set ft=json"`, []string{"vim", "-c", "set ft=json"}},
		{`vim\ -u\ foo`, []string{"vim -u foo"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitShellWords(tt.in)); diff != "" {
			t.Fatalf("splitShellWords(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestApplyExternalEditorResult_FillsImportAndCleansUp(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "I")
	if m.modal != modalImport {
		t.Fatalf("expected import modal")
	}

	path := filepath.Join(t.TempDir(), "edited.json")
	if err := os.WriteFile(path, []byte(`{"schedule": [], "inventory": {}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	m.applyExternalEditorResult(externalEditorDoneMsg{path: path, before: ""})

	if got := m.textarea.Value(); got != `{"schedule": [], "inventory": {}}` {
		t.Fatalf("textarea=%q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, stat err=%v", err)
	}
	m = press(m, "ctrl+s")
	if m.modal != modalNone || len(m.board.State().Schedule) != 0 {
		t.Fatalf("expected edited payload imported; modal=%v tasks=%d", m.modal, len(m.board.State().Schedule))
	}
}
