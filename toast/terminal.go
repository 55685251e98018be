package toast

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vortex-fintech/agenda/logger"
)

var levelColors = map[Level]lipgloss.AdaptiveColor{
	Success: {Light: "2", Dark: "10"},
	Error:   {Light: "1", Dark: "9"},
	Warning: {Light: "3", Dark: "11"},
	Info:    {Light: "4", Dark: "12"},
}

// Terminal writes one line per toast. Styling is applied only when the
// writer is a terminal, unless Plain is forced.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styled bool
}

func NewTerminal(w io.Writer, forcePlain bool) *Terminal {
	if w == nil {
		w = os.Stdout
	}
	return &Terminal{w: w, styled: !forcePlain && isTTY(w)}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) Notify(ts Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.w, t.render(ts))
}

func (t *Terminal) render(ts Toast) string {
	if !t.styled {
		return fmt.Sprintf("[%s] %s", ts.Title, ts.Message)
	}
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColors[ts.Level]).
		Render(ts.Title)
	return badge + " " + ts.Message
}

// Log writes toasts to a structured logger; errors at error level, the
// rest at info.
type Log struct {
	L logger.LoggerInterface
}

func (l Log) Notify(ts Toast) {
	if l.L == nil {
		return
	}
	kv := []any{"level", ts.Level.String(), "title", ts.Title}
	if ts.Level == Error {
		l.L.Errorw(ts.Message, kv...)
		return
	}
	l.L.Infow(ts.Message, kv...)
}
