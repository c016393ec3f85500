package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-cmdgui/internal/core/runner"
)

var showCmd = &cobra.Command{
	Use:   "show [-- ARGS...]",
	Short: "Print the command line assembled from arguments",
	Long: `Parse ARGS with the parser compiled from the schema and print the
command line a front-end would run for them.`,
	Example: `  cmdgui show -- --all --width 80
  cmdgui show --usage`,
	RunE: runShow,
}

var runCmd = &cobra.Command{
	Use:   "run [-- ARGS...]",
	Short: "Assemble and run the command without a front-end",
	Long: `Parse ARGS, assemble the command line and run it, streaming its
standard output and standard error. cmdgui exits with the command's exit code.`,
	Example: `  cmdgui run -- --all /tmp`,
	RunE:    runRun,
}

func init() {
	rootCmd.AddCommand(showCmd, runCmd)

	showCmd.Flags().Bool("usage", false, "Print the usage of the wrapped program instead")
	runCmd.Flags().Bool("echo", false, "Print the command line to stderr before running it")
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	if usage, _ := cmd.Flags().GetBool("usage"); usage {
		fmt.Fprint(cmd.OutOrStdout(), sess.Parser().Usage())
		return nil
	}

	line, err := sess.Preview(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	if echo, _ := cmd.Flags().GetBool("echo"); echo {
		line, err := sess.Preview(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "$", line)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	result, err := sess.Run(ctx, args, func(line runner.Line) {
		if line.Stream == runner.Stderr {
			fmt.Fprintln(stderr, line.Text)
			return
		}
		fmt.Fprintln(stdout, line.Text)
	})
	if err != nil {
		return err
	}

	switch {
	case result.Cancelled:
		logger.Warn("Command interrupted", "duration", result.Duration)
		return &ExitError{Code: 130}
	case result.ExitCode != 0:
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
