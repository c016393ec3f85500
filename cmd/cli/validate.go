package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema",
	Long: `Load the schema and compile it into an argument parser without
starting a front-end.

This command will:
1. Read and validate the schema file
2. Compile it into a parser
3. Print a summary of the arguments it declares`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	spinner, err := utils.NewSpinnerWithWriter(cmd.ErrOrStderr(), "Loading schema")
	if err != nil {
		return err
	}
	if err := spinner.Start(); err != nil {
		return err
	}

	fs, name, err := schema.OpenFS(cfg.Schema)
	if err != nil {
		spinner.StopWithFailure("Failed to open schema")
		return err
	}
	s, err := schema.Load(fs, name)
	if err != nil {
		spinner.StopWithFailure("Schema is invalid")
		return err
	}

	spinner.UpdateMessage("Compiling parser")
	p, err := parser.Compile(s)
	if err != nil {
		spinner.StopWithFailure("Failed to compile parser")
		return err
	}
	spinner.StopWithSuccess("Schema is valid")
	logger.Info("Schema validation passed", "path", cfg.Schema, "arguments", len(s.Args))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nProgram: %s\n", s.DisplayName())
	fmt.Fprintf(out, "  - Command: %s\n", s.Program.Command)
	fmt.Fprintf(out, "  - Flags: %d\n", len(s.Flags()))
	fmt.Fprintf(out, "  - Positionals: %d\n", len(s.Positionals()))
	for _, group := range s.Groups() {
		fmt.Fprintf(out, "  - Group %s: %s\n", group.ID, strings.Join(group.Names(), ", "))
	}

	fmt.Fprintf(out, "\n%s", p.Usage())
	return nil
}
