package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	path   string
	before string
	err    error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// editInExternalEditor suspends the UI and edits text in $VISUAL/$EDITOR via a
// temp file. The result comes back as externalEditorDoneMsg.
func editInExternalEditor(text string) (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "route-import-*.json")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	c := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return externalEditorDoneMsg{path: path, before: text, err: err}
	}), nil
}

// applyExternalEditorResult loads the edited file into the import textarea and
// removes it.
func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	if strings.TrimSpace(msg.path) == "" {
		return
	}
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		m.setError("Editor failed: " + msg.err.Error())
		return
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.setError("Editor read failed: " + err.Error())
		return
	}
	after := string(b)
	m.textarea.SetValue(after)
	if strings.TrimSpace(after) == strings.TrimSpace(msg.before) {
		m.setStatus("No changes from " + externalEditorName())
		return
	}
	m.setStatus("Updated from " + externalEditorName() + " (ctrl+s to import)")
}

// splitShellWords splits an editor command line into argv. Single quotes,
// double quotes and backslash escapes (outside single quotes) are honored.
func splitShellWords(s string) []string {
	var out []string
	var cur strings.Builder
	inSingle, inDouble, escaped := false, false, false

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
