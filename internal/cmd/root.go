package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/gridwatch/internal/cmd/config"
	"github.com/Iron-Ham/gridwatch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gridwatch",
	Short: "Terminal monitor for grid agent simulations",
	Long: `gridwatch follows a multi-agent grid simulation in the terminal.

It connects to the simulation server's live monitor feed (or opens a
recorded replay) and shows the step counter, team scores, the open tasks
with their block patterns, and everything on an inspected grid cell.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/gridwatch/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GRIDWATCH")
	// Replace dots with underscores for nested keys in env vars
	// e.g., GRIDWATCH_SERVER_URL for server.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
