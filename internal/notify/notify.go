// Package notify carries user-facing success/failure notices out of the core.
// Sinks are fire-and-forget: Notify must never block or panic.
package notify

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind classifies a notice.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// Notice is a single toast.
type Notice struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	At          time.Time
}

// New stamps a notice with an id and the current time.
func New(kind Kind, title, description string) Notice {
	return Notice{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: description,
		At:          time.Now(),
	}
}

// Sink receives notices.
type Sink interface {
	Notify(Notice)
}

// Func adapts a function to Sink.
type Func func(Notice)

// Notify implements Sink.
func (f Func) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Sink = Func(func(Notice) {})

// Multi fans a notice out to every sink.
type Multi []Sink

// Notify implements Sink.
func (m Multi) Notify(n Notice) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}

// LogSink records notices in the application log.
type LogSink struct {
	Logger *zap.Logger
}

// Notify implements Sink.
func (s LogSink) Notify(n Notice) {
	if s.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("notice_id", n.ID),
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Kind == Error {
		s.Logger.Warn("notice", fields...)
		return
	}
	s.Logger.Info("notice", fields...)
}

const defaultQueueSize = 32

// Queue buffers notices for a consumer such as the TUI. When the buffer is
// full new notices are dropped rather than blocking the producer.
type Queue struct {
	ch chan Notice
}

// NewQueue returns a queue holding at most size pending notices.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{ch: make(chan Notice, size)}
}

// Notify implements Sink.
func (q *Queue) Notify(n Notice) {
	select {
	case q.ch <- n:
	default:
	}
}

// C exposes the receive side of the queue.
func (q *Queue) C() <-chan Notice {
	return q.ch
}

// Drain returns every pending notice without blocking.
func (q *Queue) Drain() []Notice {
	var out []Notice
	for {
		select {
		case n := <-q.ch:
			out = append(out, n)
		default:
			return out
		}
	}
}
