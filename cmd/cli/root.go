package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
	fynegui "go-cmdgui/internal/fyne-gui"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cmdgui",
	Short: "Generate a form-based front-end for any command-line program",
	Long: `cmdgui reads a small INI schema describing the flags and positional
arguments of a command-line program and turns it into a form. Filling in the
form assembles the command line; running it streams the output back.

Front-ends:
  cmdgui          Native desktop window (same as "cmdgui gui")
  cmdgui tui      Terminal interface
  cmdgui web      Web view (requires a build with -tags wails)

When the schema file does not exist, an example schema is written to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
	RunE: runGUI,
}

// ExitError carries the exit code of a command started by "cmdgui run".
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cmdgui/config.yaml)")
	rootCmd.PersistentFlags().StringP("schema", "s", config.DefaultSchemaFile, "INI schema describing the wrapped command")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode with verbose logging")

	bindFlags()
}

func bindFlags() {
	viper.BindPFlag("schema", rootCmd.PersistentFlags().Lookup("schema"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.cmdgui")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CMDGUI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if IsDebugMode() {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func initializeConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if IsDebugMode() {
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = utils.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// openSession loads the configured schema, writing the example schema first
// when the file is missing, and binds it to a runner.
func openSession() (*session.Session, error) {
	fs, name, err := schema.OpenFS(cfg.Schema)
	if err != nil {
		return nil, err
	}

	s, created, err := schema.LoadOrCreate(fs, name)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("Wrote example schema", "path", cfg.Schema)
	}

	return session.New(s, runner.New(cfg.Runner.Options(), logger), logger)
}

func runGUI(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	logger.Info("Starting native GUI", "program", sess.Schema().DisplayName())
	fynegui.NewFyneApp(sess, cfg.UI, logger).Run()
	return nil
}

func GetLogger() *utils.Logger {
	return logger
}

func IsDebugMode() bool {
	debugFlag, _ := rootCmd.PersistentFlags().GetBool("debug")
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	return debugFlag || logLevel == "debug"
}
