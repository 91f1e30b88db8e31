package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/codalotl/diffreview/internal/config"
	"github.com/codalotl/diffreview/internal/diff"
	"github.com/codalotl/diffreview/internal/render"
	"github.com/codalotl/diffreview/internal/review"
	"github.com/codalotl/diffreview/internal/tui"
	"github.com/spf13/cobra"
)

// compare reads the inputs in args and returns a session with a fresh Document.
func (e *env) compare(args []string) (*review.Session, inputs, error) {
	in, err := e.readInputs(args)
	if err != nil {
		return nil, inputs{}, err
	}
	sess := review.NewSession(diff.New(e.cfg.DiffOptions()))
	if _, err := sess.Compare(in.original, in.revised); err != nil {
		return nil, inputs{}, err
	}
	return sess, in, nil
}

func newReviewCommand(e *env) *cobra.Command {
	var out string
	var watch bool
	cmd := &cobra.Command{
		Use:   "review ORIGINAL REVISED",
		Short: "Review changes interactively",
		Long: `Opens an interactive review of the changes from ORIGINAL to REVISED.

Keys: j/k or arrows select a change, a accepts it, r rejects it, u undoes the last decision, A/R accept/reject everything pending,
y copies the current result to the clipboard, ? toggles help, q quits.`,
		Args: exactArgs(2, "ORIGINAL and REVISED"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && (args[0] == "-" || args[1] == "-") {
				return usageErrorf("--watch cannot be used with stdin input")
			}
			sess, in, err := e.compare(args)
			if err != nil {
				return err
			}

			opts := tui.Options{
				Title: in.originalName() + " → " + in.revisedName(),
				Color: colorEnabled(e.cfg.Color, e.out),
			}
			if watch {
				opts.WatchPaths = []string{in.originalPath, in.revisedPath}
				opts.Reload = func() (string, string, error) {
					r, err := e.readInputs(args)
					return r.original, r.revised, err
				}
			}
			if e.out != os.Stdout {
				opts.Output = e.out
			}
			if e.in != os.Stdin {
				opts.Input = e.in
			}
			if err := tui.Run(cmd.Context(), sess, opts); err != nil {
				return err
			}

			if out != "" {
				return e.writeOutput(out, sess.Text())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the reviewed text to `FILE` on quit")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "start a new review whenever ORIGINAL or REVISED changes on disk")
	return cmd
}

// Output formats for apply.
const (
	formatText     = "text"
	formatPatch    = "patch"
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatANSI     = "ansi"
)

var formats = []string{formatText, formatPatch, formatMarkdown, formatHTML, formatANSI}

func newApplyCommand(e *env) *cobra.Command {
	var (
		script    string
		accept    []int
		reject    []int
		acceptAll bool
		rejectAll bool
		format    string
		out       string
		ctxLines  int
		color     string
	)
	cmd := &cobra.Command{
		Use:   "apply ORIGINAL REVISED",
		Short: "Apply review decisions non-interactively and print the result",
		Long: `Applies decisions to the changes from ORIGINAL to REVISED and prints the result.

Decisions are applied in this order: --accept ids, --reject ids, the --do script, then --accept-all or --reject-all.
Deciding an already decided change has no effect, so with "--accept 2 --reject 2" change 2 stays accepted.

A --do script is a list of commands separated by spaces or commas:
  a3, accept:3    accept change 3
  r3, reject:3    reject change 3
  u, undo         undo the last decision
  A, accept-all   accept every pending change
  R, reject-all   reject every pending change

Use "diffreview segments" to see the change ids.`,
		Example: `  diffreview apply draft.md edited.md --accept 1,3
  diffreview apply draft.md edited.md --do "a1 a2 u r2" --format patch
  diffreview apply draft.md - --accept-all --out final.md < edited.md`,
		Args: exactArgs(2, "ORIGINAL and REVISED"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isFormat(format) {
				return usageErrorf("unknown --format %q (want one of %s)", format, strings.Join(formats, ", "))
			}
			if acceptAll && rejectAll {
				return usageErrorf("--accept-all and --reject-all are mutually exclusive")
			}
			cmds, err := review.ParseCommands(script)
			if err != nil {
				return usageErrorf("--do: %v", err)
			}
			if cmd.Flags().Changed("context") {
				if ctxLines < 0 {
					return usageErrorf("--context must be >= 0")
				}
				if err := e.cfg.Set("context", strconv.Itoa(ctxLines), config.Source{Kind: "flag", Path: "context"}); err != nil {
					return usageErrorf("--context: %v", err)
				}
			}
			if cmd.Flags().Changed("color") {
				if err := e.cfg.Set("color", color, config.Source{Kind: "flag", Path: "color"}); err != nil {
					return usageErrorf("--color: %v", err)
				}
			}

			sess, in, err := e.compare(args)
			if err != nil {
				return err
			}

			var plan []review.Command
			for _, id := range accept {
				plan = append(plan, review.Command{Kind: review.CommandAccept, SegmentID: id})
			}
			for _, id := range reject {
				plan = append(plan, review.Command{Kind: review.CommandReject, SegmentID: id})
			}
			plan = append(plan, cmds...)
			switch {
			case acceptAll:
				plan = append(plan, review.Command{Kind: review.CommandAcceptAll})
			case rejectAll:
				plan = append(plan, review.Command{Kind: review.CommandRejectAll})
			}
			if _, err := sess.DoAll(plan); err != nil {
				return err
			}

			s, err := e.project(sess, in, format)
			if err != nil {
				return err
			}
			return e.writeOutput(out, s)
		},
	}
	f := cmd.Flags()
	f.StringVar(&script, "do", "", "review commands to apply, e.g. \"a1 r2 u\"")
	f.IntSliceVarP(&accept, "accept", "a", nil, "accept the changes with these `IDS` (comma separated or repeated)")
	f.IntSliceVarP(&reject, "reject", "r", nil, "reject the changes with these `IDS` (comma separated or repeated)")
	f.BoolVar(&acceptAll, "accept-all", false, "accept every change still pending")
	f.BoolVar(&rejectAll, "reject-all", false, "reject every change still pending")
	f.StringVarP(&format, "format", "f", formatText, "output: "+strings.Join(formats, ", "))
	f.StringVarP(&out, "out", "o", "", "write output to `FILE` instead of stdout")
	f.IntVarP(&ctxLines, "context", "U", 0, "lines of context for --format patch (default from config: 3)")
	f.StringVar(&color, "color", "", "color for --format ansi: auto, always, never (default from config: auto)")
	return cmd
}

func isFormat(s string) bool {
	for _, f := range formats {
		if s == f {
			return true
		}
	}
	return false
}

// project renders the session in format.
func (e *env) project(sess *review.Session, in inputs, format string) (string, error) {
	report := render.ReportInput{OriginalName: in.originalName(), RevisedName: in.revisedName(), Session: sess}
	switch format {
	case formatPatch:
		return render.Patch(sess.Original(), sess.Text(), in.originalName(), in.originalName()+" (reviewed)", e.cfg.Context)
	case formatMarkdown:
		return render.Markdown(report), nil
	case formatHTML:
		return render.HTML(report)
	case formatANSI:
		s := render.ANSI(sess.Document(), render.ANSIOptions{Color: colorEnabled(e.cfg.Color, e.out)})
		return ensureNewline(s), nil
	default:
		return sess.Text(), nil
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func newSegmentsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "segments ORIGINAL REVISED",
		Short: "List the changes between ORIGINAL and REVISED with their ids",
		Args:  exactArgs(2, "ORIGINAL and REVISED"),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := e.compare(args)
			if err != nil {
				return err
			}
			if len(sess.Document().Segments()) == 0 {
				_, err := fmt.Fprintln(e.out, "no changes")
				return err
			}
			return render.Segments(e.out, sess.Document(), terminalWidth(e.out, 100))
		},
	}
}

func newShowCommand(e *env) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "show ORIGINAL REVISED",
		Short: "Print the compared text inline, with each change labelled by its id",
		Args:  exactArgs(2, "ORIGINAL and REVISED"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("color") {
				if err := e.cfg.Set("color", color, config.Source{Kind: "flag", Path: "color"}); err != nil {
					return usageErrorf("--color: %v", err)
				}
			}
			sess, _, err := e.compare(args)
			if err != nil {
				return err
			}
			s := render.ANSI(sess.Document(), render.ANSIOptions{Color: colorEnabled(e.cfg.Color, e.out)})
			return e.writeOutput("", ensureNewline(s))
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "auto, always, or never (default from config: auto)")
	return cmd
}

func newConfigCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and where each setting came from",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteJSON(e.out, e.cfg)
		},
	}
}
