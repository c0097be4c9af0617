// Package cli wires configuration, logging and the shell loop behind a cobra
// root command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Neev4n/codecrafters-shell-go/internal/config"
	"github.com/Neev4n/codecrafters-shell-go/internal/shell"
	"github.com/Neev4n/codecrafters-shell-go/internal/slogger"
)

type options struct {
	configPath string
	verbosity  int
	prompt     string
}

func addFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.configPath, "config", "", "path to config file (default $XDG_CONFIG_HOME/gosh/config.yaml)")
	fs.CountVarP(&o.verbosity, "verbose", "v", "increase diagnostic output on stderr (-v info, -vv debug)")
	fs.StringVar(&o.prompt, "prompt", "", "prompt printed before each line")
}

// Streams are the standard streams handed to the shell.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Execute runs the root command against the process streams and returns the
// status the process should exit with.
func Execute() int {
	return Run(context.Background(), os.Args[1:], Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// Run is Execute with explicit arguments and streams.
func Run(ctx context.Context, args []string, streams Streams) int {
	code := 0
	cmd := newRootCmd(streams, &code)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		slogger.FromContext(cmd.Context()).Error("shell terminated", "err", err)
		fmt.Fprintln(streams.Err, "gosh:", err)
		return 1
	}

	return code
}

func newRootCmd(streams Streams, code *int) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "gosh",
		Short:         "A small interactive shell",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := config.NewLoader(opts.configPath)
			if err != nil {
				return err
			}

			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("verbose") {
				cfg.Verbosity = opts.verbosity
			}
			if flags.Changed("prompt") {
				cfg.Prompt = opts.prompt
			}

			logger := slogger.New(slogger.Config{Verbosity: cfg.Verbosity, Output: streams.Err})
			ctx := slogger.WithLogger(cmd.Context(), logger)
			cmd.SetContext(ctx)

			logger.Debug("config loaded", "path", loader.Path(), "prompt", cfg.Prompt)

			sh := shell.New(streams.In, streams.Out, streams.Err,
				shell.WithSearchPath(shell.SearchPathFromEnv()),
				shell.WithPrompt(cfg.Prompt),
				shell.WithLogger(logger),
			)

			c, err := sh.Run(ctx)
			*code = c
			return err
		},
	}

	addFlags(cmd.Flags(), &opts)
	return cmd
}
