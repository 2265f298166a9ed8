// Package cli implements the booklet-maker command-line interface.
//
// The command takes an input PDF, an output path and an optional number of
// blank pages to insert before page 1, converts the input into booklet form
// and prints how to feed the result through a printer.
//
// # Exit status
//
// 0 on success, 130 when interrupted, 1 for everything else. Usage errors
// (wrong argument count, non-numeric blank count, unknown flags) also print
// the usage text.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spookylukey/booklet-maker/internal/config"
	"github.com/spookylukey/booklet-maker/pkg/booklet"
	"github.com/spookylukey/booklet-maker/pkg/buildinfo"
	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

const appName = "booklet-maker"

// LogInfo is the default log level, exported for use in main.go.
const LogInfo = log.InfoLevel

const description = `Converts a PDF document into a booklet form, by re-ordering pages and
combining into double sized pages suitable for double-sided printing.`

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
	Err    io.Writer
}

// New creates a CLI writing results to stdout and logs and errors to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		Out:    stdout,
		Err:    stderr,
	}
}

// rootOpts holds the command-line flags.
type rootOpts struct {
	verbose         bool
	quiet           bool
	allowMixedSizes bool
	configPath      string
}

// RootCommand creates the booklet-maker command.
func (c *CLI) RootCommand() *cobra.Command {
	var opts rootOpts

	root := &cobra.Command{
		Use:           appName + " <input.pdf> <output.pdf> [blank pages to insert at start]",
		Short:         "Re-order a PDF into a foldable booklet",
		Long:          description,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          validateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, &opts)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Wrap(apperr.ErrCodeInvalidUsage, err, "invalid flags")
	})

	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging, including the sheet layout")
	root.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print printing instructions")
	root.Flags().BoolVar(&opts.allowMixedSizes, "allow-mixed-sizes", false, "lay out pages of differing size using page 1's size instead of failing")
	root.Flags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/"+appName+"/config.toml)")

	return root
}

// validateArgs checks the positional arguments before anything is opened.
func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		return apperr.New(apperr.ErrCodeInvalidUsage, "expected an input and an output path")
	}
	if len(args) > 3 {
		return apperr.New(apperr.ErrCodeInvalidUsage, "too many arguments")
	}
	if len(args) == 3 {
		if _, err := booklet.ParseBlanks(args[2]); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) run(cmd *cobra.Command, args []string, opts *rootOpts) error {
	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if opts.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)

	bopts := booklet.Options{
		InputPath:       args[0],
		OutputPath:      args[1],
		Blanks:          cfg.Blanks,
		AllowMixedSizes: cfg.AllowMixedSizes,
	}
	if len(args) == 3 {
		// Already validated by validateArgs.
		bopts.Blanks, _ = booklet.ParseBlanks(args[2])
	}
	if cmd.Flags().Changed("allow-mixed-sizes") {
		bopts.AllowMixedSizes = opts.allowMixedSizes
	}
	quiet := cfg.Quiet
	if cmd.Flags().Changed("quiet") {
		quiet = opts.quiet
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	res, err := runConvert(ctx, bopts)
	if err != nil {
		return err
	}
	if !quiet {
		printResult(c.Out, bopts.OutputPath, res)
	}
	return nil
}

func (c *CLI) loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

func runConvert(ctx context.Context, opts booklet.Options) (*booklet.Result, error) {
	logger := loggerFromContext(ctx)
	logger.Debug("converting", "input", opts.InputPath, "output", opts.OutputPath, "blanks", opts.Blanks)
	return booklet.NewConverter(logger).Convert(ctx, opts)
}

// Run executes the command with args (without the program name) and
// returns the process exit status.
func (c *CLI) Run(ctx context.Context, args []string) int {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	case apperr.Is(err, apperr.ErrCodeInvalidUsage):
		printError(c.Err, apperr.UserMessage(err))
		fmt.Fprintf(c.Err, "\n%s\n\n%s", description, root.UsageString())
		return 1
	default:
		printError(c.Err, apperr.UserMessage(err))
		return 1
	}
}
