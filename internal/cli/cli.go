// Package cli implements the command line of the dispatch entrypoint.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/engine"
	"github.com/ruffel/commandeer/internal/logging"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	logLevel string
	logFile  string
}

type dispatchOptions struct {
	file     string
	command  string
	truncate bool
}

// exitCode carries the code a successful dispatch wants to terminate with.
type exitCode struct {
	code int
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	result := &exitCode{}

	root := newRootCmd(stdout, stderr, result)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return engine.ExitCodeFatal
	}

	return result.code
}

// newRootCmd creates the root command. The exit code of a dispatched
// invocation is stored in result.
func newRootCmd(stdout, stderr io.Writer, result *exitCode) *cobra.Command {
	env := logging.ConfigFromEnv()
	global := &globalOptions{}

	root := &cobra.Command{
		Use:   "commandeer",
		Short: "Record and replay external command invocations",
		Long: `commandeer sits in front of an external program. In record mode it runs the
real program and appends its output and exit code to a JSON fixture. In replay
mode it serves the first matching recording without running anything.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&global.logLevel, "log-level", env.Level, "log level (disabled when empty)")
	root.PersistentFlags().StringVar(&global.logFile, "log-file", env.File, "append logs to this file instead of stderr")

	root.AddCommand(
		newDispatchCmd(commandeer.Record, global, result),
		newDispatchCmd(commandeer.Replay, global, result),
	)

	return root
}

func newDispatchCmd(mode commandeer.Mode, global *globalOptions, result *exitCode) *cobra.Command {
	opts := &dispatchOptions{}

	cmd := &cobra.Command{
		Use:  mode.String() + " --command NAME [flags] [--] [ARGS...]",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, mode, global, opts, args, result)
		},
	}

	switch mode {
	case commandeer.Record:
		cmd.Short = "Run a command for real and append the result to a fixture"
	case commandeer.Replay:
		cmd.Short = "Reproduce a recorded command result from a fixture"
	}

	// Everything after the first positional argument belongs to the
	// intercepted command, including values that look like flags.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVar(&opts.file, "file", engine.DefaultFile, "fixture file")
	cmd.Flags().StringVar(&opts.command, "command", "", "name of the intercepted command")
	_ = cmd.MarkFlagRequired("command")

	if mode == commandeer.Record {
		cmd.Flags().BoolVar(&opts.truncate, "truncate", false, "discard existing recordings before writing")
	}

	return cmd
}

func runDispatch(cmd *cobra.Command, mode commandeer.Mode, global *globalOptions, opts *dispatchOptions, args []string, result *exitCode) error {
	logger, closer, err := logging.New(logging.Config{Level: global.logLevel, File: global.logFile}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	defer func() { _ = closer.Close() }()

	req := engine.Request{
		Mode:     mode,
		File:     opts.file,
		Command:  opts.command,
		Args:     args,
		Truncate: opts.truncate,
	}

	code, err := engine.Dispatch(cmd.Context(), req, cmd.OutOrStdout(), cmd.ErrOrStderr(), engine.WithLogger(logger))
	if err != nil {
		return err
	}

	result.code = code

	return nil
}
