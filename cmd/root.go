// Package cmd provides the command-line interface for rnoe with
// configuration management and permission-gated mail access.
//
// Configuration path precedence (highest to lowest):
//  1. --config flag
//  2. RNOE_CONFIG_FILE environment variable
//  3. $XDG_CONFIG_HOME/read-no-evil/config.yaml (~/.config fallback)
//
// All other environment overrides follow the RNOE_<OPTION> pattern.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rnoe",
	Short: "Manage and use read-no-evil secure email accounts",
	Long: `rnoe manages the read-no-evil configuration file and provides
permission-gated, injection-scanned access to the configured accounts.

All commands are flag-driven with no interactive prompts, so the tool is
safe to invoke from scripts and agents.

Quick Start:
  rnoe create                     Create a config skeleton
  rnoe add --email you@example.com --host imap.example.com --smtp-host smtp.example.com
  rnoe list                       List configured accounts
  rnoe mail list                  List recent inbox messages

Passwords are never stored in the config file; each account reads its
password from RNOE_ACCOUNT_<ID>_PASSWORD or the .env file beside the
config.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/read-no-evil/config.yaml, can also use RNOE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initEnv enables automatic environment variable binding with the RNOE_
// prefix (e.g. RNOE_LOG_LEVEL=debug).
func initEnv() {
	viper.SetEnvPrefix("RNOE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
}

// configPath resolves the config file path once at the CLI boundary;
// everything below receives it explicitly.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envConfigFile := os.Getenv("RNOE_CONFIG_FILE"); envConfigFile != "" {
		return envConfigFile
	}
	return config.DefaultPath()
}

// newStore returns the config store for the resolved path.
func newStore() *config.Store {
	return config.NewStore(configPath())
}

// newLogger builds the process logger from the --log-level flag.
func newLogger() logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(viper.GetString("log-level"))
	return logging.NewLogger(cfg)
}
