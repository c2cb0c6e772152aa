package logging

import (
	"github.com/pion/logging"
)

var defaultFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for the given scope backed by the
// process-wide default factory.
func NewLogger(scope string) logging.LeveledLogger {
	return defaultFactory.NewLogger(scope)
}
