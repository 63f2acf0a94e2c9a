package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type confirmAction int

const (
	confirmDeleteTask confirmAction = iota
	confirmDeleteStep
	confirmDeleteRequired
	confirmDeleteItem
	confirmReset
)

// confirmState describes the pending destructive action.
type confirmState struct {
	action confirmAction
	title  string
	body   string
	label  string
	taskID string
	idx    int
	item   string
	focus  confirmModalFocus
}

func renderConfirmModal(width int, c confirmState) string {
	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	active := btn.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)

	label := c.label
	if label == "" {
		label = "Confirm"
	}
	confirm, cancel := btn.Render(label), btn.Render("Cancel")
	if c.focus == confirmFocusConfirm {
		confirm = active.Render(label)
	} else {
		cancel = active.Render("Cancel")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y/n   esc: cancel")

	return renderModalBox(width, c.title, strings.Join([]string{c.body, "", controls, "", help}, "\n"))
}
