package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// filesChangedMsg is sent when a watched input file is written, created, or replaced.
type filesChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// watcher reports changes to a fixed set of files. It watches their parent directories, since editors often save by renaming a temp file over the original.
type watcher struct {
	fs    *fsnotify.Watcher
	files map[string]bool
}

func newWatcher(paths ...string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	w := &watcher{fs: fw, files: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// next returns a command that blocks until the next relevant change. It returns nil once the watcher is closed.
func (w *watcher) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if abs, err := filepath.Abs(event.Name); err != nil || !w.files[abs] {
					continue
				}
				return filesChangedMsg{path: event.Name}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error {
	return w.fs.Close()
}
