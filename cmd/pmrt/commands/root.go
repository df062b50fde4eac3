// Package commands implements the CLI commands for pmrt.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

var rootCmd = &cobra.Command{
	Use:   "pmrt",
	Short: "Convert HTML into poor man's rich text",
	Long: `pmrt converts HTML, typically mail bodies, into plain text that keeps
emphasis, lists, quotes, tables and links readable through lightweight
inline markers: *bold*, /italic/, _underline_, ~strike~ and "> " quotes.

Examples:
  # Convert a file
  pmrt convert message.html

  # Convert from stdin
  cat message.html | pmrt convert

  # Convert a page and report stats as YAML
  pmrt convert https://example.com --report yaml

  # Serve the converter over HTTP
  pmrt serve --addr :8080`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pmrt.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().String("preset", "default", "base configuration: default, plain")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pmrt")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PMRT")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initLogger() {
	logger.Init(logger.Options{
		Debug:  viper.GetBool("debug"),
		Quiet:  viper.GetBool("quiet"),
		JSON:   viper.GetBool("log_json"),
		Output: os.Stderr,
	})
}

// loadConfig builds the converter configuration: the preset, then the
// config file and PMRT_* environment, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*pmrt.Config, error) {
	var cfg *pmrt.Config
	switch preset := viper.GetString("preset"); preset {
	case "", "default":
		cfg = pmrt.DefaultConfig()
	case "plain":
		cfg = pmrt.PresetPlain()
	default:
		return nil, fmt.Errorf("unknown preset: %s (use 'default' or 'plain')", preset)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.Debug = cfg.Debug || viper.GetBool("debug")

	flags := cmd.Flags()
	if flags.Lookup("rule-width") != nil && flags.Changed("rule-width") {
		cfg.RuleWidth, _ = flags.GetInt("rule-width")
	}
	if flags.Lookup("bullet") != nil && flags.Changed("bullet") {
		cfg.DefaultBullet, _ = flags.GetString("bullet")
	}
	if flags.Lookup("margin-threshold") != nil && flags.Changed("margin-threshold") {
		cfg.MarginThreshold, _ = flags.GetFloat64("margin-threshold")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(cmd *cobra.Command, format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

// addConfigFlags registers the flags that override converter settings.
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int("rule-width", 0, "length of horizontal rules")
	flags.String("bullet", "", "bullet for unordered lists: disc, circle, square, none")
	flags.Float64("margin-threshold", 0, "collapsed margin, in lines, that leaves an empty line between blocks")
}
