// Package notify defines the fire-and-forget sinks the core reports to:
// user-facing notifications and coarse progress.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Severity classifies a notification for display.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Display durations used by the core.
const (
	Short = 3 * time.Second
	Long  = 5 * time.Second
)

// Notifier receives short human-readable messages.
type Notifier interface {
	Notify(message string, severity Severity, duration time.Duration)
}

// Progress receives completion percentages in [0, 100].
type Progress interface {
	Report(percent int)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, severity Severity, duration time.Duration)

func (f NotifierFunc) Notify(message string, severity Severity, duration time.Duration) {
	f(message, severity, duration)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(percent int)

func (f ProgressFunc) Report(percent int) { f(percent) }

// Nop discards everything.
type Nop struct{}

func (Nop) Notify(string, Severity, time.Duration) {}
func (Nop) Report(int)                             {}

// Logger forwards notifications and progress to a zap logger.
type Logger struct {
	Log *zap.Logger
}

// NewLogger returns a sink writing to log. A nil log discards.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{Log: log}
}

func (l *Logger) Notify(message string, severity Severity, duration time.Duration) {
	fields := []zap.Field{zap.Stringer("severity", severity), zap.Duration("duration", duration)}
	switch severity {
	case Error:
		l.Log.Error(message, fields...)
	case Warning:
		l.Log.Warn(message, fields...)
	default:
		l.Log.Info(message, fields...)
	}
}

func (l *Logger) Report(percent int) {
	l.Log.Debug("progress", zap.Int("percent", percent))
}

// Message is a recorded notification.
type Message struct {
	Text     string
	Severity Severity
	Duration time.Duration
}

// Recorder keeps every notification and progress report in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	percents []int
}

func (r *Recorder) Notify(message string, severity Severity, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Text: message, Severity: severity, Duration: duration})
}

func (r *Recorder) Report(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percents = append(r.percents, percent)
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Percents returns a copy of the recorded progress values.
func (r *Recorder) Percents() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.percents...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

// Percent converts done/total into a clamped percentage.
func Percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	p := done * 100 / total
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
