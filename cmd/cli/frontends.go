package cli

import (
	"github.com/spf13/cobra"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
	"go-cmdgui/internal/tui"
)

// WebLauncher opens the web front-end for a session.
type WebLauncher func(sess *session.Session, ui config.UIConfig, logger *utils.Logger) error

var webLauncher WebLauncher

// RegisterWebLauncher installs the web front-end. Builds without it report
// an error from "cmdgui web".
func RegisterWebLauncher(launch WebLauncher) {
	webLauncher = launch
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the native desktop window",
	RunE:  runGUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal interface",
	Long: `Open the form in the terminal.

Keys: tab/shift+tab move between fields, space toggles a check box,
left/right cycle a choice, enter selects a mutually exclusive option,
ctrl+r runs, ctrl+x stops, ctrl+l clears the output and esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		return tui.Run(sess)
	},
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Open the web view front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		if webLauncher == nil {
			return utils.NewConfigError("the web front-end is not part of this build (rebuild with: wails build -tags wails)", nil)
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		logger.Info("Starting web GUI", "program", sess.Schema().DisplayName())
		return webLauncher(sess, cfg.UI, logger)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd, tuiCmd, webCmd)
}
