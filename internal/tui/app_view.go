package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"route-cli/internal/view"
)

func (m appModel) View() string {
	*m.listFocused = m.drawer && m.pane == paneSide

	w := m.width
	if w <= 0 {
		w = 100
	}
	bh := m.bodyHeight()
	lw, rw := m.paneWidths()

	header := m.renderHeader(w)
	var body string
	if m.modal != modalNone {
		body = lipgloss.Place(w, bh, lipgloss.Center, lipgloss.Center, m.renderModal())
	} else {
		left := normalizePane(m.renderTimetable(lw, bh), lw, bh)
		right := normalizePane(m.renderSide(rw, bh), rw, bh)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, vrule(bh), right)
	}

	status := ""
	switch {
	case m.status != "" && m.statusErr:
		status = styleErr().Render(m.status)
	case m.status != "":
		status = styleOK().Render(m.status)
	}
	return strings.Join([]string{
		header,
		body,
		fitLine(status, w),
		fitLine(m.help.ShortHelpView(m.keys.ShortHelp()), w),
	}, "\n")
}

func (m appModel) renderHeader(w int) string {
	st := m.board.State()
	right := styleMuted().Render(fmt.Sprintf("%d tasks %s %d items", len(st.Schedule), glyphBullet(), len(st.Inventory)))
	left := styleHeading().Render("Route") + styleMuted().Render("  today's timetable")
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	return fitLine(left+spaces(gap)+right, w)
}

func (m appModel) renderTimetable(width, height int) string {
	focused := m.pane == paneTimetable
	title := "Timetable"
	if focused {
		title = styleHeading().Render(title)
	} else {
		title = styleMuted().Render(title)
	}
	if len(m.rows) == 0 {
		return title + "\n" + styleMuted().Render("No tasks yet. Press a to add one.")
	}

	listH := max(height-1, 1)
	start := 0
	if m.cursor >= listH {
		start = m.cursor - listH + 1
	}
	end := min(start+listH, len(m.rows))

	sel := m.board.Selection()
	st := m.board.State()
	lines := []string{title}
	for i := start; i < end; i++ {
		r := m.rows[i]
		var ln string
		switch r.kind {
		case rowTask:
			twisty := glyphTwistyCollapsed()
			if r.task.Expanded {
				twisty = glyphTwistyExpanded()
			}
			ln = fmt.Sprintf("%s %s%s%s  %s", twisty, r.task.Start, glyphRange(), r.task.End, r.task.Title)
			ln += styleMuted().Render(fmt.Sprintf("  %dm", r.task.DurationMins))
			if t, ok := st.FindTask(r.taskID); ok && !taskReady(st, *t) {
				ln += " " + styleWarn().Render(glyphShort())
			}
		case rowStep:
			ln = "    " + glyphBullet() + " " + r.step.Name
			if r.step.Link != "" {
				ln += styleMuted().Render(" " + glyphArrow() + " link")
			}
		case rowRequired:
			ln = "    " + requiredLine(r.req)
		}
		inspected := (r.kind == rowTask && sel.Kind == view.SelTask && sel.TaskID == r.taskID) ||
			(r.kind == rowRequired && sel.Kind == view.SelRequirement && sel.TaskID == r.taskID && sel.ReqIndex == r.idx)
		if inspected {
			ln = lipgloss.NewStyle().Bold(true).Render(ln)
		}
		if i == m.cursor && focused {
			ln = styleSelected().Render(fitLine(ln, width))
		} else if i == m.cursor {
			ln = lipgloss.NewStyle().Underline(true).Render(ln)
		}
		lines = append(lines, ln)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderSide(width, height int) string {
	focused := m.pane == paneSide
	titleStyle := styleMuted()
	if focused {
		titleStyle = styleHeading()
	}
	if m.drawer {
		title := titleStyle.Render(fmt.Sprintf("Inventory (%d)", len(m.invList.Items())))
		if len(m.invList.Items()) == 0 {
			return title + "\n" + styleMuted().Render("No inventory yet. Press n to add an item.")
		}
		return title + "\n" + m.invList.View()
	}
	return titleStyle.Render("Inspector") + "\n" + m.inspector.View()
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalForm:
		return m.form.view(m.width)
	case modalConfirm:
		return renderConfirmModal(m.width, m.confirm)
	case modalImport:
		content := m.textarea.View()
		if m.modalErr != "" {
			content += "\n\n" + styleErr().Width(modalBodyWidth(m.width)).Render(m.modalErr)
		}
		content += "\n\n" + styleMuted().Render("ctrl+s: import   ctrl+e: editor   esc: cancel")
		return renderModalBox(m.width, "Import", content)
	case modalExport:
		content := m.exportView.View() + "\n\n" + styleMuted().Render("Copy your JSON.   j/k: scroll   esc: close")
		return renderModalBox(m.width, "Export", content)
	}
	return ""
}
