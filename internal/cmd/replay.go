package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/tui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <dir>",
	Short: "Play back a recorded simulation",
	Long: `Open a replay directory and browse it in the terminal UI.

A replay directory holds the static snapshot (replay.static_file) and
zstd-compressed step chunks matching replay.pattern, read in name order.
Use '[' and ']' to step and space to play or pause.

With --follow the directory is watched and steps appended by a running
'gridwatch record' show up as they are written.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Bool("follow", false, "watch the directory for new steps")
	_ = viper.BindPFlag("replay.follow", replayCmd.Flags().Lookup("follow"))
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	ropts := cfg.Replay.Options()
	ropts.Logger = logger
	r, err := replay.Open(args[0], ropts)
	if err != nil {
		return err
	}

	opts, err := tuiOptions(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("opening replay", "dir", args[0], "steps", r.Len(), "follow", cfg.Replay.Follow)
	return tui.NewReplayApp(r, opts).Run(cmd.Context())
}
