package tui

import (
	"io"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"route-cli/internal/model"
)

var (
	reMarkdownLink = regexp.MustCompile(`\[[^\]]+\]\(([^)\s]+)\)`)
	reURL          = regexp.MustCompile(`(?i)\bhttps?://[^\s<>()]+`)
)

type linkOpenDoneMsg struct {
	url string
	err error
}

// taskLinks lists what `o` can open for a task: step links in order, then
// links found in the notes. Duplicates are dropped.
func taskLinks(t model.Task) []string {
	seen := map[string]bool{}
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[strings.ToLower(u)] {
			return
		}
		seen[strings.ToLower(u)] = true
		out = append(out, u)
	}
	for _, s := range t.Steps {
		add(s.Link)
	}
	for _, m := range reMarkdownLink.FindAllStringSubmatch(t.Notes, -1) {
		add(m[1])
	}
	for _, u := range reURL.FindAllString(t.Notes, -1) {
		add(strings.TrimRight(u, ".,;:!?"))
	}
	return out
}

// linkUnderCursor is the step's own link on a step row, otherwise the task's
// first link.
func (m appModel) linkUnderCursor() (string, bool) {
	r, ok := m.currentRow()
	if !ok {
		return "", false
	}
	if r.kind == rowStep {
		u := strings.TrimSpace(r.step.Link)
		return u, u != ""
	}
	t, found := m.board.State().FindTask(r.taskID)
	if !found {
		return "", false
	}
	links := taskLinks(*t)
	if len(links) == 0 {
		return "", false
	}
	return links[0], true
}

func openURLCmd(open func(string) error, u string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenDoneMsg{url: u, err: open(u)}
	}
}

func openInBrowser(u string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}
