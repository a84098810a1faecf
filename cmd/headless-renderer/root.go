package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kerrors "github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"headless/pkg/config"
	"headless/pkg/logger"
	"headless/pkg/pipeline"
	"headless/pkg/resource"
	"headless/pkg/watch"
	"headless/version"
	stdnet "headless/std/net"
)

// errReported is returned once the failure has already been shown to the user.
var errReported = errors.New("reported")

type rootFlags struct {
	output  string
	width   int
	height  int
	verbose bool
	profile string
	watch   bool
	logFile string
}

const rootLong = `Headless HTML/CSS renderer demo. The input document is read but not
interpreted: the output is always the demo scene at the requested viewport size.

An input file named like a subcommand (compare, help) must be given with a
path, e.g. ./compare.`

func newRootCmd(recent *logger.Recent) *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "headless-renderer [flags] <input.html>",
		Short:         "Headless HTML/CSS renderer demo",
		Long:          rootLong,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f, recent, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	bindRootFlags(cmd, f)
	cmd.AddCommand(newCompareCmd())
	return cmd
}

func bindRootFlags(cmd *cobra.Command, f *rootFlags) {
	// -h is the viewport height, so help only gets the long form.
	cmd.Flags().Bool("help", false, "help for "+cmd.Name())
	cmd.Flags().StringVarP(&f.output, "output", "o", pipeline.DefaultOutput, "output image file (.png, .jpg, .bmp, .tiff)")
	cmd.Flags().IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "viewport width")
	cmd.Flags().IntVarP(&f.height, "height", "h", pipeline.DefaultHeight, "viewport height")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().StringVar(&f.profile, "profile", "", "config profile name")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "re-render whenever the input file changes")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "also write JSON logs to this file")

}

func runRender(cmd *cobra.Command, f *rootFlags, recent *logger.Recent, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	}
	// Before config, so a broken config file cannot hide the usage.
	if err := pipeline.CheckInput(input); err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		cmd.PrintErr(cmd.UsageString())
		return errReported
	}

	cfg, err := config.Load(f.profile)
	if err != nil {
		return kerrors.WithStack(err)
	}
	opts := resolveOptions(cmd, f, cfg, args)

	logFile := f.logFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	var lf io.Writer
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer file.Close()
		lf = file
	}
	l := logger.New(logger.Options{Verbose: f.verbose, Console: cmd.ErrOrStderr(), LogFile: lf, Recent: recent})

	p := pipeline.New(
		resource.NewLoader(stdnet.NewClient(l)),
		resource.NewDemoRenderer(cfg.Theme),
		cmd.OutOrStdout(),
		l,
	)

	err = p.Run(cmd.Context(), opts)
	if !f.watch {
		if err != nil {
			return kerrors.WithStack(err)
		}
		return nil
	}

	if stdnet.IsNetworkURL(opts.Input) {
		return fmt.Errorf("--watch needs a local input file, got %s", opts.Input)
	}
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
	}
	if err := watchInput(cmd.Context(), p, opts, l); err != nil {
		return kerrors.WithStack(err)
	}
	return nil
}

func watchInput(ctx context.Context, p *pipeline.Pipeline, opts pipeline.Options, l *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("watching for changes", "input", opts.Input)
	return watch.File(ctx, opts.Input, func(ctx context.Context) error {
		return p.Run(ctx, opts)
	}, watch.WithLogger(l))
}

// resolveOptions applies flag > config > default precedence.
func resolveOptions(cmd *cobra.Command, f *rootFlags, cfg *config.Config, args []string) pipeline.Options {
	opts := pipeline.Options{
		Output:  f.output,
		Width:   f.width,
		Height:  f.height,
		Verbose: f.verbose,
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		opts.Output = cfg.Output
	}
	if !cmd.Flags().Changed("width") && cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if !cmd.Flags().Changed("height") && cfg.Height != 0 {
		opts.Height = cfg.Height
	}
	return opts
}
