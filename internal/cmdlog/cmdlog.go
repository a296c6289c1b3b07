package cmdlog

import (
	"time"

	"memescore/internal/logging"
	"memescore/internal/metrics"
)

// Run executes one CLI command, counting it and logging the outcome.
func Run(logger logging.Logger, cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	fields := logging.Fields{"command": cmd, "elapsed_ms": time.Since(start).Milliseconds()}
	if err != nil {
		metrics.IncCommandError(cmd)
		logging.Error(logger, cmd+"_error", err, fields)
	} else {
		logging.Info(logger, cmd+"_ok", fields)
	}
	return err
}
