package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

var (
	recordChunkSize int
	recordMaxSteps  int
)

var recordCmd = &cobra.Command{
	Use:   "record [url] <dir>",
	Short: "Record a live simulation to a replay directory",
	Long: `Connect to the live monitor feed and write every step to a replay
directory that 'gridwatch replay' can open, also while recording with
--follow.

Recording stops on Ctrl+C, when the server closes the feed, or after
--max-steps steps. Buffered steps are flushed before exiting.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().IntVar(&recordChunkSize, "chunk-size", replay.DefaultChunkSize, "steps per chunk file")
	recordCmd.Flags().IntVar(&recordMaxSteps, "max-steps", 0, "stop after this many steps (0 = unlimited)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := args[len(args)-1]
	url, err := serverURL(cfg, args[:len(args)-1])
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	rec, err := replay.NewRecorder(dir, recordChunkSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := &recordSink{rec: rec, maxSteps: recordMaxSteps, stop: cancel, logger: logger.WithComponent("record")}
	opts := sessionOptions(cfg, url, logger)
	opts.OnUpdate = sink.update
	sess, err := session.New(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recording %s to %s (Ctrl+C to stop)\n", url, dir)
	runErr := sess.Run(ctx)

	if err := sink.close(); err != nil {
		return err
	}
	steps := sink.steps()
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d steps\n", steps)

	// A feed that ends after delivering steps is a finished simulation.
	if runErr != nil && steps == 0 {
		return runErr
	}
	if runErr != nil {
		logger.Info("feed closed", "error", runErr.Error(), "steps", steps)
	}
	return nil
}

// recordSink turns session snapshots into recorder writes. Each snapshot
// carries the latest worlds; a step is recorded when its pointer changes.
type recordSink struct {
	rec      *replay.Recorder
	maxSteps int
	stop     context.CancelFunc
	logger   *logging.Logger

	mu      sync.Mutex
	static  *world.StaticWorld
	last    *world.DynamicWorld
	count   int
	err     error
	stopped bool
}

func (s *recordSink) update(snap session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || snap.Static == nil || snap.Dynamic == nil {
		return
	}

	if snap.Static != s.static {
		if s.static != nil && s.static.SimID != snap.Static.SimID {
			s.fail(fmt.Errorf("simulation changed from %q to %q", s.static.SimID, snap.Static.SimID))
			return
		}
		if err := s.rec.SetStatic(snap.Static); err != nil {
			s.fail(err)
			return
		}
		s.static = snap.Static
	}

	if snap.Dynamic == s.last {
		return
	}
	s.last = snap.Dynamic
	if err := s.rec.Add(snap.Dynamic); err != nil {
		s.fail(err)
		return
	}
	s.count++
	s.logger.WithStep(snap.Dynamic.Step).Debug("recorded step")

	if s.maxSteps > 0 && s.count >= s.maxSteps {
		s.stopped = true
		s.stop()
	}
}

func (s *recordSink) fail(err error) {
	s.err = err
	s.stopped = true
	s.stop()
}

func (s *recordSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if err := s.rec.Close(); err != nil {
		return err
	}
	return s.err
}

func (s *recordSink) steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
