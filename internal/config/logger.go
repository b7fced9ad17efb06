package config

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/models"
)

const defaultEventBufferSize = 1000

// eventLogger keeps the most recent log entries of the process so the
// asset server can show what an export did.
type eventLogger struct {
	// Ring buffer for storing events
	eventBuffer []*models.LogEntry
	maxSize     int
	currentPos  int
	isFull      bool
	mu          sync.RWMutex
}

func newEventLogger(size int) *eventLogger {
	if size <= 0 {
		size = defaultEventBufferSize
	}
	return &eventLogger{
		eventBuffer: make([]*models.LogEntry, size),
		maxSize:     size,
	}
}

func (t *eventLogger) Fire(entry *logrus.Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.eventBuffer[t.currentPos] = models.NewLogEntry(entry)
	t.currentPos = (t.currentPos + 1) % t.maxSize

	if t.currentPos == 0 {
		t.isFull = true
	}

	return nil
}

func (t *eventLogger) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

func (t *eventLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.eventBuffer = make([]*models.LogEntry, t.maxSize)
	t.currentPos = 0
	t.isFull = false
}

func (t *eventLogger) GetEvents() []*models.LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.getEventsInternal()
}

// LogFilter contains the filtering criteria for log events
type LogFilter struct {
	// Filter by log levels (if empty, all levels are included)
	Levels []logrus.Level `json:"levels,omitempty"`
	// Filter events after this time (if nil, no time filter from start)
	Since *time.Time `json:"since,omitempty"`
	// Only events carrying this run id
	Run string `json:"run,omitempty"`
	// Maximum number of events to return, newest kept (if 0, no limit)
	Limit int `json:"limit,omitempty"`
}

// GetEventsWithFilter returns events that match the specified filter criteria
func (t *eventLogger) GetEventsWithFilter(filter LogFilter) []*models.LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	levelMap := make(map[logrus.Level]bool, len(filter.Levels))
	for _, level := range filter.Levels {
		levelMap[level] = true
	}

	var filtered []*models.LogEntry
	for _, entry := range t.getEventsInternal() {
		if len(levelMap) > 0 && !levelMap[entry.Level] {
			continue
		}
		if filter.Since != nil && entry.Time.Before(*filter.Since) {
			continue
		}
		if len(filter.Run) > 0 && entry.Run() != filter.Run {
			continue
		}
		filtered = append(filtered, entry)
	}

	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[len(filtered)-filter.Limit:]
	}

	return filtered
}

// getEventsInternal returns events in chronological order (assumes caller has lock)
func (t *eventLogger) getEventsInternal() []*models.LogEntry {
	if !t.isFull {
		result := make([]*models.LogEntry, t.currentPos)
		copy(result, t.eventBuffer[:t.currentPos])
		return result
	}

	result := make([]*models.LogEntry, t.maxSize)
	copy(result, t.eventBuffer[t.currentPos:])
	copy(result[t.maxSize-t.currentPos:], t.eventBuffer[:t.currentPos])
	return result
}
