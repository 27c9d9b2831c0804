// Package telemetry wires the state machine's transition stream into
// structured logging and OpenTelemetry tracing.
package telemetry

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

// NewLogger creates the application logger.
func NewLogger(w io.Writer, level log.Level, prefix string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// LogObserver logs every transition at info level.
type LogObserver struct {
	logger *log.Logger
	fields []any
}

// NewLogObserver returns an observer writing to logger. Extra key/value
// fields are attached to every line.
func NewLogObserver(logger *log.Logger, keyvals ...any) *LogObserver {
	return &LogObserver{logger: logger, fields: keyvals}
}

// OnTransition implements fsm.Observer.
func (o *LogObserver) OnTransition(t fsm.Transition) {
	kv := append([]any{
		"from", t.From.String(),
		"to", t.To.String(),
		"tick", t.Tick,
		"lives", t.Lives,
	}, o.fields...)
	o.logger.Info("state transition", kv...)
}
