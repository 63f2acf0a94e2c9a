// Package tui is the interactive board: timetable on the left, inspector or
// inventory drawer on the right.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"route-cli/internal/board"
)

type Options struct {
	Clipboard bool
	Glyphs    string
	Logger    *log.Logger
}

func Run(ctx context.Context, b *board.Board, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, b, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
