package logging

import (
	"go.uber.org/zap"
)

// EventLog is the zap-backed sink behind usecase.EventLog. Operations report
// three kinds of events: success, warning and error. Logging never returns
// an error to the caller.
type EventLog struct {
	log *zap.Logger
}

func NewEventLog() (*EventLog, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &EventLog{log: logger}, nil
}

// NewNop returns an event log that discards everything.
func NewNop() *EventLog {
	return &EventLog{log: zap.NewNop()}
}

func (l *EventLog) Success(message string) {
	l.log.Info(message, zap.String("event", "success"))
}

func (l *EventLog) Warning(message string) {
	l.log.Warn(message, zap.String("event", "warning"))
}

func (l *EventLog) Error(message string) {
	l.log.Error(message, zap.String("event", "error"))
}

// Sync flushes buffered entries; call it on shutdown.
func (l *EventLog) Sync() {
	_ = l.log.Sync()
}
