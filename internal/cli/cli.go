// Package cli implements the diffreview command line: interactive review, scripted apply, and read-only views of a comparison.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codalotl/diffreview/internal/config"
	"github.com/codalotl/diffreview/internal/simplelogger"
	"github.com/spf13/cobra"
)

// Version is the diffreview version. It is a var so builds can override it with -ldflags "-X".
var Version = "0.3.0"

// RunOptions override standard I/O and configuration lookup. Nil fields use the defaults, which is what main does; tests override them.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Config locates configuration files and the environment. The zero value reads the real home directory, working directory, and environment.
	Config config.LoadOptions
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code and the error, if any:
//   - 0: success.
//   - 1: runtime failure (unreadable input, malformed diff, unknown segment, write failure).
//   - 2: usage error (bad flags, wrong number of arguments, unparseable command script).
//
// Errors have already been printed to the error writer when Run returns.
func Run(args []string, opts *RunOptions) (int, error) {
	if opts == nil {
		opts = &RunOptions{}
	}
	e := &env{
		in:      opts.In,
		out:     opts.Out,
		errOut:  opts.Err,
		loadCfg: opts.Config,
	}
	if e.in == nil {
		e.in = os.Stdin
	}
	if e.out == nil {
		e.out = os.Stdout
	}
	if e.errOut == nil {
		e.errOut = os.Stderr
	}

	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}
	simplelogger.Log("run: %s", strings.Join(argv, " "))

	root := newRootCommand(e)
	root.SetArgs(argv)
	root.SetIn(e.in)
	root.SetOut(e.out)
	root.SetErr(e.errOut)

	cmd, err := root.ExecuteContextC(context.Background())
	if err == nil {
		return 0, nil
	}

	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	fmt.Fprintf(e.errOut, "Error: %v\n", err)
	if code == 2 && cmd != nil {
		fmt.Fprintf(e.errOut, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	simplelogger.Log("exit %d: %v", code, err)
	return code, err
}

// env is the state shared by all commands of one Run.
type env struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	loadCfg config.LoadOptions

	// cfg is loaded in the root's PersistentPreRunE and has flag overrides applied.
	cfg config.Config

	granularity string
	timeout     string
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "diffreview [command]",
		Short: "Review the differences between two texts, accepting or rejecting each change",
		Long: `diffreview compares an ORIGINAL and a REVISED text and splits the differences into numbered segments.
Each segment can be accepted (take the revised text) or rejected (keep the original); undecided segments keep the original.
Decisions can be undone, most recent first. Use "-" for one of the inputs to read it from stdin.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.loadConfig(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&e.granularity, "granularity", "g", "", "diff unit: char, word, or line (default from config: char)")
	pf.StringVar(&e.timeout, "timeout", "", "limit on diff computation time, e.g. 500ms (0 uses the default)")

	root.AddCommand(
		newReviewCommand(e),
		newApplyCommand(e),
		newSegmentsCommand(e),
		newShowCommand(e),
		newConfigCommand(e),
	)
	return root
}

func (e *env) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadWith(e.loadCfg)
	if err != nil {
		return err
	}
	overrides := []struct {
		flag, key, value string
	}{
		{"granularity", "granularity", e.granularity},
		{"timeout", "timeout", e.timeout},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value, config.Source{Kind: "flag", Path: o.flag}); err != nil {
			return usageErrorf("--%s: %v", o.flag, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return usageErrorf("%v", err)
	}
	e.cfg = cfg
	return nil
}

// exactArgs is cobra.ExactArgs returning a UsageError.
func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s requires %s (got %d arguments)", cmd.CommandPath(), names, len(args))
		}
		return nil
	}
}
