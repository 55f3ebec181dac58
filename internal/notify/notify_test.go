package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify("one", Info, Short)
	r.Notify("two", Error, Long)
	r.Report(50)
	r.Report(100)

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, Message{Text: "two", Severity: Error, Duration: Long}, last)
	assert.Len(t, r.Messages(), 2)
	assert.Equal(t, []int{50, 100}, r.Percents())
}

func TestLogger_SeverityLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewLogger(zap.New(core))

	l.Notify("saved", Success, Short)
	l.Notify("careful", Warning, Short)
	l.Notify("broken", Error, Long)
	l.Report(42)

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, zap.ErrorLevel, entries[2].Level)
		assert.Equal(t, "broken", entries[2].Message)
		assert.Equal(t, int64(42), entries[3].ContextMap()["percent"])
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 100, Percent(0, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 100, Percent(5, 3))
}

func TestFuncAdapters(t *testing.T) {
	var got string
	var pct int
	NotifierFunc(func(m string, _ Severity, _ time.Duration) { got = m }).Notify("hi", Info, Short)
	ProgressFunc(func(p int) { pct = p }).Report(7)
	assert.Equal(t, "hi", got)
	assert.Equal(t, 7, pct)
}
