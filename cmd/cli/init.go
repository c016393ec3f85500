package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example schema",
	Long: `Write the example schema to the configured schema path (--schema).

The example wraps "ls" and shows most argument types, including a mutually
exclusive group. Edit it to describe your own program.`,
	Example: `  cmdgui init
  cmdgui init --schema rsync.ini --force`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing schema")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	fs, name, err := schema.OpenFS(cfg.Schema)
	if err != nil {
		return err
	}
	if _, err := fs.Stat(name); err == nil && !force {
		return utils.NewValidationError(fmt.Sprintf("schema %s already exists (use --force to overwrite)", cfg.Schema), nil)
	}

	spinner, err := utils.NewSpinnerWithWriter(cmd.ErrOrStderr(), "Writing example schema")
	if err != nil {
		return err
	}
	if err := spinner.Start(); err != nil {
		return err
	}

	if err := schema.WriteDefault(fs, name); err != nil {
		spinner.StopWithFailure("Failed to write schema")
		return err
	}
	spinner.StopWithSuccess("Schema written")

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Schema)
	return nil
}
