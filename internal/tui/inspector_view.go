package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"route-cli/internal/model"
	"route-cli/internal/store"
	"route-cli/internal/view"
)

func renderInspector(in view.Inspector, width int) string {
	switch in.Kind {
	case view.SelTask:
		return renderTaskDetail(in.Task, width)
	case view.SelRequirement:
		return renderRequirementDetail(in.Requirement, width)
	case view.SelItem:
		return renderItemDetail(in.Item)
	default:
		return styleMuted().Width(max(width, 10)).Render(in.Placeholder)
	}
}

func renderTaskDetail(d *view.TaskDetail, width int) string {
	t := d.Task
	var b strings.Builder
	b.WriteString(styleHeading().Render(t.Title) + "\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("%s %s %s  %d min", t.Time, glyphArrow(), d.End, t.DurationMins)) + "\n")
	if notes := renderNotes(t.Notes, width); notes != "" {
		b.WriteString("\n" + notes + "\n")
	}

	b.WriteString("\n" + styleHeading().Render("Steps") + "\n")
	if len(d.Steps) == 0 {
		b.WriteString(styleMuted().Render("  No steps yet.") + "\n")
	}
	for _, s := range d.Steps {
		b.WriteString("  " + glyphBullet() + " " + s.Name + "\n")
		if s.Link != "" {
			b.WriteString("    " + styleMuted().Render(s.Link) + "\n")
		}
	}

	b.WriteString("\n" + styleHeading().Render("Required") + "\n")
	if len(d.Required) == 0 {
		b.WriteString(styleMuted().Render("  Nothing required.") + "\n")
	}
	for _, r := range d.Required {
		b.WriteString("  " + requiredLine(r) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("s: add step   r: add required   x: delete"))
	return b.String()
}

func renderRequirementDetail(d *view.RequirementDetail, width int) string {
	need := d.NeedText
	if need == "" {
		need = "—"
	}
	var b strings.Builder
	b.WriteString(styleHeading().Render(d.Name) + "\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("For: %s (%s)", d.Task.Title, d.Task.Time)) + "\n\n")
	b.WriteString(labelRow("Needed", stylePill().Render(need), width) + "\n")
	b.WriteString(labelRow("You have", stylePill().Render(d.HaveText), width) + "\n\n")
	b.WriteString(availabilityStyle(d.Avail).Render(d.Status) + "\n\n")
	b.WriteString(styleMuted().Render("c: consume needed qty   i: open inventory"))
	return b.String()
}

func renderItemDetail(d *view.ItemDetail) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render(d.Name) + "\n\n")
	b.WriteString("Quantity  " + stylePill().Render(d.QtyText) + "\n\n")
	b.WriteString(styleHeading().Render("Used by") + "\n")
	if len(d.UsedBy) == 0 {
		b.WriteString(styleMuted().Render("  Not used by any task.") + "\n")
	}
	for _, t := range d.UsedBy {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", glyphBullet(), t.Time, t.Title))
	}
	b.WriteString("\n" + styleMuted().Render("+/-: adjust   n: edit   x: delete"))
	return b.String()
}

// requiredLine is the one-line form of a required entry: mark, name, need and
// the have badge.
func requiredLine(r view.RequiredRow) string {
	s := availabilityStyle(r.Avail).Render(availabilityGlyph(r.Avail)) + " " + r.Name
	if r.NeedText != "" {
		s += styleMuted().Render(" " + glyphBullet() + " need " + r.NeedText)
	}
	return s + "  " + stylePill().Render(r.Badge())
}

func availabilityGlyph(a store.Availability) string {
	switch {
	case a.Sufficient == nil:
		return glyphUnknown()
	case *a.Sufficient:
		return glyphOK()
	default:
		return glyphShort()
	}
}

func availabilityStyle(a store.Availability) lipgloss.Style {
	switch {
	case a.Sufficient == nil:
		return styleMuted()
	case *a.Sufficient:
		return styleOK()
	default:
		return styleWarn()
	}
}

func labelRow(label, value string, width int) string {
	return fitLine(fmt.Sprintf("%-10s", label), min(12, max(width, 12))) + value
}

// taskReady reports whether no quantified requirement is short.
func taskReady(st *store.State, t model.Task) bool {
	for _, r := range t.Required {
		if a := st.Availability(r); a.Sufficient != nil && !*a.Sufficient {
			return false
		}
	}
	return true
}
