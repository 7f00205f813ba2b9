// Package logging provides structured logging for gridwatch.
//
// It wraps log/slog with a JSON handler and child loggers that carry the
// simulation ID, step and component. The TUI owns the terminal, so logs go
// to a size-rotated file under the config directory:
//
//	logger, err := logging.NewLoggerWithRotation(logDir, "INFO", logging.RotationConfig{
//	    MaxSizeMB:  10,
//	    MaxBackups: 3,
//	    Compress:   true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithSimulation("sim-1").WithStep(42).Warn("duplicate task name", "task", "task3")
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"duplicate task name","sim_id":"sim-1","step":42,"task":"task3"}
//
// Rotated files are named gridwatch.log.1, gridwatch.log.2, and so on, .1
// being the newest. With compression enabled they become gridwatch.log.1.gz.
//
// Use [NopLogger] in tests.
package logging
