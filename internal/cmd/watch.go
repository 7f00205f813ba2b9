package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/gridwatch/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [url]",
	Short: "Watch a live simulation",
	Long: `Connect to the live monitor feed of a simulation server and show the
overlay in a full-screen terminal UI.

Without a URL argument, server.url from the configuration is used. If the
connection fails or drops, press 'r' to retry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url, err := serverURL(cfg, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	opts, err := tuiOptions(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("watching live feed", "url", url)
	return tui.NewLiveApp(sessionOptions(cfg, url, logger), opts).Run(cmd.Context())
}
