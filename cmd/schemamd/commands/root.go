// Package commands implements the CLI commands for schemamd.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/schemamd/internal/config"
	"github.com/jmylchreest/schemamd/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "schemamd",
	Short: "Convert HTML schema table exports to Markdown",
	Long: `Schemamd turns the HTML export of a schema column table into a
Markdown table with four columns: Column Name, Description, API Field Name
and Data Type.

Examples:
  # Convert columns.html to columns.md
  schemamd convert columns.html

  # Choose the output path
  schemamd convert columns.html -o docs/columns.md

  # Parse the markup as a node tree instead of matching patterns
  schemamd convert columns.html --strategy dom

  # Read stdin, write stdout
  cat columns.html | schemamd convert - > columns.md`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug:  viper.GetBool("debug"),
			Quiet:  viper.GetBool("quiet"),
			JSON:   viper.GetBool("json_logs"),
			Output: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.schemamd.yaml or $HOME/.schemamd.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))

	config.Defaults(viper.GetViper())
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".schemamd")
		viper.SetConfigType("yaml")
	}

	// SCHEMAMD_STRATEGY, SCHEMAMD_ROW_MARKER, ...
	viper.SetEnvPrefix("SCHEMAMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints a progress message to stderr (unless quiet mode).
func logInfo(cmd *cobra.Command, format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
