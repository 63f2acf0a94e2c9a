package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"route-cli/internal/form"
)

// formModal renders a form.Form as a stack of single-line inputs. A failed
// submit keeps it open with the error shown under the fields.
type formModal struct {
	def    form.Form
	inputs []textinput.Model
	focus  int
	taskID string
	err    string
}

func newFormModal(def form.Form, taskID string, prefill map[string]string, width int) *formModal {
	fm := &formModal{def: def, taskID: taskID}
	for i, f := range def.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 500
		ti.Width = modalBodyWidth(width) - 3
		v := f.Default
		if p, ok := prefill[f.Key]; ok {
			v = p
		}
		ti.SetValue(v)
		if i == 0 {
			ti.Focus()
		}
		fm.inputs = append(fm.inputs, ti)
	}
	return fm
}

func (f *formModal) result() form.Result {
	res := form.Result{Values: map[string]string{}}
	for i, fl := range f.def.Fields {
		res.Values[fl.Key] = strings.TrimSpace(f.inputs[i].Value())
	}
	return res
}

func (f *formModal) setValue(key, v string) {
	for i, fl := range f.def.Fields {
		if fl.Key == key {
			f.inputs[i].SetValue(v)
		}
	}
}

func (f *formModal) move(delta int) tea.Cmd {
	n := len(f.inputs)
	if n == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = ((f.focus+delta)%n + n) % n
	return f.inputs[f.focus].Focus()
}

func (f *formModal) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *formModal) view(width int) string {
	bodyW := modalBodyWidth(width)
	var lines []string
	for i, fl := range f.def.Fields {
		label := fl.Label
		if fl.Required {
			label += " *"
		}
		if i == f.focus {
			lines = append(lines, styleHeading().Render(label))
		} else {
			lines = append(lines, styleMuted().Render(label))
		}
		lines = append(lines, renderInputLine(bodyW, f.inputs[i].View()))
	}
	if f.err != "" {
		lines = append(lines, "", styleErr().Width(bodyW).Render(f.err))
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render("tab/shift+tab: field   enter: save   esc: cancel"))
	return renderModalBox(width, f.def.Title, strings.Join(lines, "\n"))
}
