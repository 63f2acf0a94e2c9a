package form

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// NewLiner returns a line editor that aborts on Ctrl-C. Callers must Close it.
func NewLiner() *liner.State {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return l
}

// Fill asks for every field of f in order. Ctrl-C or EOF cancels the form.
// Blank answers take the field's default.
func Fill(p Prompter, f Form) (Result, error) {
	res := Result{Values: map[string]string{}}
	for _, fl := range f.Fields {
		label := fl.Label
		if fl.Default != "" {
			label += " [" + fl.Default + "]"
		} else if fl.Placeholder != "" {
			label += " (" + fl.Placeholder + ")"
		}
		line, err := p.Prompt(label + ": ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return Result{Cancelled: true}, nil
			}
			return Result{}, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			line = fl.Default
		}
		res.Values[fl.Key] = line
	}
	return res, nil
}
