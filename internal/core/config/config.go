package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/utils"
)

const DefaultSchemaFile = "cmdgui.ini"

type Config struct {
	Schema  string        `yaml:"schema" mapstructure:"schema"`
	Runner  RunnerConfig  `yaml:"runner" mapstructure:"runner"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type RunnerConfig struct {
	Shell     string   `yaml:"shell" mapstructure:"shell"`
	ShellFlag string   `yaml:"shell_flag" mapstructure:"shell_flag"`
	WorkDir   string   `yaml:"workdir" mapstructure:"workdir"`
	Env       []string `yaml:"env" mapstructure:"env"` // KEY=VALUE pairs appended to the environment
}

type UIConfig struct {
	Theme  string `yaml:"theme" mapstructure:"theme"`
	Dark   bool   `yaml:"dark" mapstructure:"dark"`
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads the global viper instance, which the root command has already
// configured with files, environment and flags.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, utils.NewConfigError("failed to unmarshal config", err)
	}
	return &config, nil
}

func SetDefaults() {
	defaults := runner.DefaultOptions()

	viper.SetDefault("schema", DefaultSchemaFile)
	viper.SetDefault("runner.shell", defaults.Shell)
	viper.SetDefault("runner.shell_flag", defaults.ShellFlag)
	viper.SetDefault("runner.workdir", "")
	viper.SetDefault("runner.env", []string{})
	viper.SetDefault("ui.theme", "Modern")
	viper.SetDefault("ui.dark", false)
	viper.SetDefault("ui.width", 900)
	viper.SetDefault("ui.height", 700)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Schema) == "" {
		return utils.NewConfigError("schema is required", nil)
	}
	if c.Runner.Shell == "" {
		return utils.NewConfigError("runner.shell is required", nil)
	}
	for _, kv := range c.Runner.Env {
		if strings.Index(kv, "=") <= 0 {
			return utils.NewConfigError(fmt.Sprintf("runner.env entry %q must be KEY=VALUE", kv), nil)
		}
	}
	if c.UI.Width < 0 || c.UI.Height < 0 {
		return utils.NewConfigError("ui.width and ui.height must not be negative", nil)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return utils.NewConfigError(fmt.Sprintf("unsupported logging.level: %s", c.Logging.Level), nil)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return utils.NewConfigError(fmt.Sprintf("unsupported logging.format: %s (supported: text, json)", c.Logging.Format), nil)
	}
	return nil
}

func (c RunnerConfig) Options() runner.Options {
	return runner.Options{
		Shell:     c.Shell,
		ShellFlag: c.ShellFlag,
		Dir:       c.WorkDir,
		Env:       append([]string{}, c.Env...),
	}
}
