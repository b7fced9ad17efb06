package config

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearvrf/gvrf-exporter/internal/models"
)

func fire(t *testing.T, l *eventLogger, level logrus.Level, msg string, fields logrus.Fields) {
	t.Helper()
	require.NoError(t, l.Fire(&logrus.Entry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Data:    fields,
	}))
}

func TestEventLogger_RingBuffer(t *testing.T) {
	l := newEventLogger(3)

	for i := 0; i < 5; i++ {
		fire(t, l, logrus.InfoLevel, fmt.Sprintf("event %d", i), nil)
	}

	events := l.GetEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "event 2", events[0].Message)
	assert.Equal(t, "event 4", events[2].Message)

	l.Clear()
	assert.Empty(t, l.GetEvents())
}

func TestEventLogger_Filter(t *testing.T) {
	l := newEventLogger(10)

	fire(t, l, logrus.InfoLevel, "exported Cube", logrus.Fields{models.RunField: "a"})
	fire(t, l, logrus.WarnLevel, "texture missing", logrus.Fields{models.RunField: "a", "error": errors.New("no file")})
	fire(t, l, logrus.InfoLevel, "exported Lamp", logrus.Fields{models.RunField: "b"})

	warnings := l.GetEventsWithFilter(LogFilter{Levels: []logrus.Level{logrus.WarnLevel}})
	require.Len(t, warnings, 1)
	assert.Equal(t, "no file", warnings[0].Data["error"])

	runA := l.GetEventsWithFilter(LogFilter{Run: "a"})
	assert.Len(t, runA, 2)

	latest := l.GetEventsWithFilter(LogFilter{Limit: 1})
	require.Len(t, latest, 1)
	assert.Equal(t, "exported Lamp", latest[0].Message)

	future := time.Now().Add(time.Hour)
	assert.Empty(t, l.GetEventsWithFilter(LogFilter{Since: &future}))
}

func TestConfig_GetEventsWithoutLogger(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.GetEvents(LogFilter{}))
}
