package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type exportDoneMsg struct {
	text string
	err  error
}

// copyToClipboardCmd writes the export off the update loop; a failure makes
// the model show the text instead.
func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{text: text, err: copyToClipboard(text)}
	}
}

func copyToClipboard(s string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
