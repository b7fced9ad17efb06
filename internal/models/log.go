package models

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RunField tags every log entry of one export run.
const RunField = "run"

type LogEntry struct {

	// Contains all the fields set by the caller. Errors are stored as
	// their message so the entry stays serializable.
	Data logrus.Fields `json:"data,omitempty"`

	// Time at which the log entry was created
	Time time.Time `json:"time"`

	// Level the log entry was logged at
	Level logrus.Level `json:"level,omitempty"`

	// Message passed to Info, Warn, Error and friends
	Message string `json:"message,omitempty"`
}

func NewLogEntry(entry *logrus.Entry) *LogEntry {
	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			data[k] = err.Error()
			continue
		}
		data[k] = v
	}

	return &LogEntry{
		Data:    data,
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Message,
	}
}

// Run returns the export run this entry belongs to, if any.
func (e *LogEntry) Run() string {
	if run, ok := e.Data[RunField].(string); ok {
		return run
	}
	return ""
}
