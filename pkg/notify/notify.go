// Package notify delivers transient user-facing status messages. Producers
// call Notify and move on; a slow or absent consumer never blocks them.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity classifies a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

// Notification is a single toast.
type Notification struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	Raised      time.Time
}

// Describe renders the notification for logs.
func (n Notification) Describe() string {
	return fmt.Sprintf(`severity:%q title:%q description:%q`, n.Severity, n.Title, n.Description)
}

// New stamps a notification with an id and time.
func New(sev Severity, title, description string) Notification {
	return Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Severity:    sev,
		Raised:      time.Now(),
	}
}

// Successf builds a Success notification titled "Success".
func Successf(format string, args ...any) Notification {
	return New(Success, "Success", fmt.Sprintf(format, args...))
}

// Errorf builds an Error notification titled "Error".
func Errorf(format string, args ...any) Notification {
	return New(Error, "Error", fmt.Sprintf(format, args...))
}

// Sink receives notifications. Implementations must not block.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

// Notify implements Sink.
func (f SinkFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// Channel buffers notifications for a single consumer such as the dashboard.
// When the buffer is full new notifications are dropped.
type Channel struct {
	ch chan Notification
}

// NewChannel returns a Channel sink with the given buffer size (64 if <= 0).
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 64
	}
	return &Channel{ch: make(chan Notification, size)}
}

// Notify implements Sink.
func (c *Channel) Notify(n Notification) {
	select {
	case c.ch <- n:
	default:
	}
}

// C exposes the receive side.
func (c *Channel) C() <-chan Notification {
	return c.ch
}

// Log mirrors notifications to a zap logger.
type Log struct {
	Logger *zap.Logger
}

// Notify implements Sink.
func (l Log) Notify(n Notification) {
	if l.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("id", n.ID),
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	switch n.Severity {
	case Error:
		l.Logger.Warn("notification", fields...)
	default:
		l.Logger.Info("notification", fields...)
	}
}

// Counter is satisfied by metrics.Metrics.
type Counter interface {
	ObserveNotification(severity string)
}

// Counted counts notifications by severity before passing them on.
type Counted struct {
	Counter Counter
	Next    Sink
}

// Notify implements Sink.
func (c Counted) Notify(n Notification) {
	if c.Counter != nil {
		c.Counter.ObserveNotification(string(n.Severity))
	}
	if c.Next != nil {
		c.Next.Notify(n)
	}
}

// Multi fans a notification out to several sinks in order.
type Multi []Sink

// Notify implements Sink.
func (m Multi) Notify(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notification in memory. Safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

// Notify implements Sink.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.all))
	copy(out, r.all)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}

// Reset forgets all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = nil
}
