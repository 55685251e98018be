// Package toast delivers short outcome notifications (success, error,
// warning, info) to a pluggable Sink.
package toast

import (
	"sync"
	"time"
)

type Level int

const (
	Success Level = iota
	Error
	Warning
	Info
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

const PositionTopRight = "toast-top-right"

// Options mirrors the display knobs of a toast.
type Options struct {
	Timeout     time.Duration
	ProgressBar bool
	CloseButton bool
	Position    string
}

type Toast struct {
	Level   Level
	Title   string
	Message string
	Options Options
}

type defaults struct {
	title   string
	timeout time.Duration
}

var levelDefaults = map[Level]defaults{
	Success: {title: "Sucesso", timeout: 3 * time.Second},
	Error:   {title: "Erro", timeout: 5 * time.Second},
	Warning: {title: "Atenção", timeout: 4 * time.Second},
	Info:    {title: "Informação", timeout: 3 * time.Second},
}

// DefaultTitle is the title used when the caller gives none.
func DefaultTitle(l Level) string { return levelDefaults[l].title }

// Sink receives finished toasts.
type Sink interface {
	Notify(Toast)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Toast)

func (f SinkFunc) Notify(t Toast) { f(t) }

// Service builds toasts with the per-level defaults and hands them to a sink.
type Service struct {
	sink Sink
}

func NewService(sink Sink) *Service {
	if sink == nil {
		sink = SinkFunc(func(Toast) {})
	}
	return &Service{sink: sink}
}

func (s *Service) Success(message string, title ...string) { s.show(Success, message, title) }
func (s *Service) Error(message string, title ...string)   { s.show(Error, message, title) }
func (s *Service) Warning(message string, title ...string) { s.show(Warning, message, title) }
func (s *Service) Info(message string, title ...string)    { s.show(Info, message, title) }

func (s *Service) show(l Level, message string, title []string) {
	d := levelDefaults[l]
	t := Toast{
		Level:   l,
		Title:   d.title,
		Message: message,
		Options: Options{
			Timeout:     d.timeout,
			ProgressBar: true,
			CloseButton: true,
			Position:    PositionTopRight,
		},
	}
	if len(title) > 0 && title[0] != "" {
		t.Title = title[0]
	}
	s.sink.Notify(t)
}

// Recorder keeps every toast in arrival order.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast and whether there was one.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = nil
}

// Tee fans a toast out to several sinks, in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(t Toast) {
		for _, s := range sinks {
			if s != nil {
				s.Notify(t)
			}
		}
	})
}
