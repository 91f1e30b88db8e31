package cli

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/codalotl/diffreview/internal/diff"
	"golang.org/x/term"
)

// inputs are the two texts being compared and the names they're displayed under.
type inputs struct {
	originalPath string
	revisedPath  string
	original     string
	revised      string
}

func (in inputs) originalName() string { return displayName(in.originalPath) }
func (in inputs) revisedName() string  { return displayName(in.revisedPath) }

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// readInputs reads ORIGINAL and REVISED. At most one of them may be "-" (stdin).
func (e *env) readInputs(args []string) (inputs, error) {
	in := inputs{originalPath: args[0], revisedPath: args[1]}
	if in.originalPath == "-" && in.revisedPath == "-" {
		return inputs{}, usageErrorf("only one of ORIGINAL and REVISED can be read from stdin")
	}
	var err error
	if in.original, err = e.readInput(in.originalPath); err != nil {
		return inputs{}, err
	}
	if in.revised, err = e.readInput(in.revisedPath); err != nil {
		return inputs{}, err
	}
	return in, nil
}

func (e *env) readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(e.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return checkUTF8(displayName(path), b)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return checkUTF8(path, b)
}

func checkUTF8(name string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", name, diff.ErrInvalidUTF8)
	}
	return string(b), nil
}

// writeOutput writes s to path, or to the command's output if path is empty.
func (e *env) writeOutput(path, s string) error {
	if path == "" {
		_, err := io.WriteString(e.out, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// terminalFd returns w's file descriptor if w is a terminal.
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// colorEnabled resolves a color mode ("auto", "always", "never") for output written to w. Auto honors NO_COLOR.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	_, isTerm := terminalFd(w)
	return isTerm
}

// terminalWidth returns w's width in columns, or def if w is not a terminal.
func terminalWidth(w io.Writer, def int) int {
	fd, ok := terminalFd(w)
	if !ok {
		return def
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return def
}
