package publish

import (
	"bytes"
	"fmt"
	"strings"

	"route-cli/internal/model"
	"route-cli/internal/store"
	"route-cli/internal/view"
)

// RenderBoardMarkdown renders the timetable and the inventory as one page.
func RenderBoardMarkdown(st *store.State, title string) string {
	if strings.TrimSpace(title) == "" {
		title = "Route"
	}
	var buf bytes.Buffer
	ln := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteByte('\n')
	}

	ln("# %s", title)
	ln("")
	ln("## Timetable")
	ln("")
	if len(st.Schedule) == 0 {
		ln("_No tasks._")
	} else {
		ln("| Time | Task | Duration | Ready |")
		ln("|---|---|---|---|")
		for _, t := range st.Schedule {
			ln("| %s–%s | [%s](tasks/%s.md) | %d min | %s |",
				t.Time, t.EndTime(), cell(t.Title), t.ID, t.DurationMins, readiness(st, t))
		}
	}
	ln("")
	ln("## Inventory")
	ln("")
	rows := view.Inventory(st)
	if len(rows) == 0 {
		ln("_No inventory yet._")
	}
	for _, r := range rows {
		ln("- %s: **%s**", r.Name, r.QtyText)
	}
	return buf.String()
}

// RenderTaskMarkdown renders one task with its steps and required items.
func RenderTaskMarkdown(st *store.State, t model.Task) string {
	var buf bytes.Buffer
	ln := func(s string) {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}

	ln("# " + t.Title)
	ln("")
	ln(fmt.Sprintf("- Time: %s–%s (%d min)", t.Time, t.EndTime(), t.DurationMins))
	ln("- ID: " + t.ID)
	ln("")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		ln("## Notes")
		ln("")
		ln(notes)
		ln("")
	}

	ln("## Steps")
	ln("")
	if len(t.Steps) == 0 {
		ln("_No steps._")
	}
	for i, s := range t.Steps {
		if s.Link != "" {
			ln(fmt.Sprintf("%d. [%s](%s)", i+1, s.Name, s.Link))
		} else {
			ln(fmt.Sprintf("%d. %s", i+1, s.Name))
		}
	}
	ln("")

	ln("## Required")
	ln("")
	if len(t.Required) == 0 {
		ln("_Nothing required._")
	}
	for _, r := range t.Required {
		a := st.Availability(r)
		mark := "[ ]"
		if a.Sufficient != nil && *a.Sufficient {
			mark = "[x]"
		}
		line := "- " + mark + " " + r.Name
		if need := view.NeedText(r); need != "" {
			line += " (need " + need + ")"
		}
		line += ", have " + view.HaveText(a)
		ln(line)
	}
	return buf.String()
}

// readiness is ✅ when every quantified requirement is covered.
func readiness(st *store.State, t model.Task) string {
	for _, r := range t.Required {
		a := st.Availability(r)
		if a.Sufficient != nil && !*a.Sufficient {
			return ":warning:"
		}
	}
	return ":white_check_mark:"
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
