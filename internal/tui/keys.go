package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Focus       key.Binding
	Drawer      key.Binding
	AddTask     key.Binding
	AddStep     key.Binding
	AddRequired key.Binding
	AddItem     key.Binding
	Consume     key.Binding
	Open        key.Binding
	Inc         key.Binding
	Dec         key.Binding
	Delete      key.Binding
	Export      key.Binding
	Import      key.Binding
	Reset       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	b := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return keyMap{
		Up:          b("k/↑", "up", "k", "up"),
		Down:        b("j/↓", "down", "j", "down"),
		Select:      b("enter", "open/select", "enter", " "),
		Focus:       b("tab", "switch pane", "tab"),
		Drawer:      b("i", "inventory", "i"),
		AddTask:     b("a", "add task", "a"),
		AddStep:     b("s", "add step", "s"),
		AddRequired: b("r", "add required", "r"),
		AddItem:     b("n", "item", "n"),
		Consume:     b("c", "consume", "c"),
		Open:        b("o", "open link", "o"),
		Inc:         b("+", "more", "+", "="),
		Dec:         b("-", "less", "-"),
		Delete:      b("x", "delete", "x"),
		Export:      b("e", "export", "e"),
		Import:      b("I", "import", "I"),
		Reset:       b("R", "reset", "R"),
		Back:        b("esc", "back", "esc"),
		Quit:        b("q", "quit", "q"),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Drawer, k.AddTask, k.AddStep, k.AddRequired, k.AddItem, k.Consume, k.Delete, k.Export, k.Import, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Focus, k.Open, k.Back},
		{k.AddTask, k.AddStep, k.AddRequired, k.AddItem},
		{k.Drawer, k.Consume, k.Inc, k.Dec, k.Delete},
		{k.Export, k.Import, k.Reset, k.Quit},
	}
}
