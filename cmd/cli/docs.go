package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate markdown documentation",
	Long: `Generate markdown documentation for the program described by the
schema, using the flags and positionals compiled from it.

With --cli, documentation for the cmdgui commands themselves is written to
the output directory instead.`,
	Example: `  # Reference for the wrapped program on stdout
  cmdgui docs --schema rsync.ini

  # Write it to a file
  cmdgui docs --output rsync.md

  # cmdgui's own command reference
  cmdgui docs --cli --output ./docs`,
	RunE: generateDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringP("output", "o", "", "Output file (directory with --cli); default stdout or ./docs")
	docsCmd.Flags().Bool("cli", false, "Document the cmdgui commands instead of the wrapped program")
}

func generateDocs(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	cliDocs, _ := cmd.Flags().GetBool("cli")

	if cliDocs {
		return generateCLIDocs(cmd.OutOrStdout(), output)
	}

	fs, name, err := schema.OpenFS(cfg.Schema)
	if err != nil {
		return err
	}
	s, err := schema.Load(fs, name)
	if err != nil {
		return err
	}
	p, err := parser.Compile(s)
	if err != nil {
		return err
	}
	wrapped := p.Command(nil)
	wrapped.DisableAutoGenTag = true

	if output == "" {
		return doc.GenMarkdown(wrapped, cmd.OutOrStdout())
	}

	f, err := os.Create(output)
	if err != nil {
		return utils.NewFileSystemError(fmt.Sprintf("failed to create %s", output), err)
	}
	defer f.Close()

	if err := doc.GenMarkdown(wrapped, f); err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Documentation for %s written to %s\n", s.DisplayName(), output)
	return nil
}

func generateCLIDocs(out io.Writer, outputDir string) error {
	if outputDir == "" {
		outputDir = "./docs"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return utils.NewFileSystemError(fmt.Sprintf("failed to create output directory %s", outputDir), err)
	}

	if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(outputDir, "*.md"))
	if err != nil {
		return fmt.Errorf("failed to list generated files: %w", err)
	}

	fmt.Fprintf(out, "Documentation successfully generated in %s\n", outputDir)
	for _, file := range files {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(file))
	}
	return nil
}
