// Package tui is the interactive review screen: the document with pending segments labelled, a selection that moves between them, and keys that accept, reject,
// and undo decisions on a review.Session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codalotl/diffreview/internal/review"
)

// Options configure Run.
type Options struct {
	// Title is shown in the header, usually "ORIGINAL → REVISED".
	Title string

	// Color enables colored segment rendering.
	Color bool

	// WatchPaths are files to watch. When one changes, Reload is called and the session re-compares, starting a fresh review.
	WatchPaths []string

	// Reload returns the current original and revised texts. Required if WatchPaths is non-empty.
	Reload func() (original, revised string, err error)

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Run runs the review screen on sess until the user quits or ctx is canceled. sess must already have a Document. Decisions are applied to sess in place, so
// the caller reads the result from sess after Run returns.
func Run(ctx context.Context, sess *review.Session, opts Options) error {
	if sess.Document() == nil {
		return review.ErrNoDocument
	}
	if len(opts.WatchPaths) > 0 && opts.Reload == nil {
		return errors.New("tui: WatchPaths set without Reload")
	}

	m := newModel(sess, opts)
	if len(opts.WatchPaths) > 0 {
		w, err := newWatcher(opts.WatchPaths...)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watcher = w
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(*model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
