// Package publish writes a read-only snapshot of the board as Markdown (and
// optionally HTML) files.
package publish

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"route-cli/internal/store"
)

type WriteOptions struct {
	Title     string
	HTML      bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteBoard writes <to>/index.md and one page per task under <to>/tasks.
// With HTML set every page also gets an .html sibling.
func WriteBoard(st *store.State, toDir string, opt WriteOptions) (WriteResult, error) {
	if st == nil {
		return WriteResult{}, errors.New("missing state")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	tasksDir := filepath.Join(toDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	title := opt.Title
	if strings.TrimSpace(title) == "" {
		title = "Route"
	}
	var res WriteResult
	emit := func(path, pageTitle, md string) error {
		if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
			return err
		}
		res.Written = append(res.Written, path)
		if !opt.HTML {
			return nil
		}
		page, err := RenderHTML(pageTitle, md)
		if err != nil {
			return err
		}
		hp := strings.TrimSuffix(path, ".md") + ".html"
		if err := writeFile(hp, []byte(page), opt.Overwrite); err != nil {
			return err
		}
		res.Written = append(res.Written, hp)
		return nil
	}

	if err := emit(filepath.Join(toDir, "index.md"), title, RenderBoardMarkdown(st, title)); err != nil {
		return WriteResult{}, err
	}
	for _, t := range st.Schedule {
		if err := emit(filepath.Join(tasksDir, t.ID+".md"), t.Title, RenderTaskMarkdown(st, t)); err != nil {
			return WriteResult{}, err
		}
	}
	return res, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return atomic.WriteFile(path, bytes.NewReader(b))
}
