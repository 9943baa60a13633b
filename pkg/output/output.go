// Package output is the leveled text sink actions and the event runner
// write their messages to.
//
// Messages may carry markup tags (<comment>, <info>, <warning>, <error>);
// Console renders them through lipgloss on a color terminal and strips
// them otherwise. Buffer records messages for tests.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/style"
	"github.com/arthur-debert/pkgactions/pkg/ui"
)

// Level of a message
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// IO is the sink user-facing messages are written to
type IO interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Console writes info messages to out and warnings and errors to errOut
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	format ui.Format
}

// NewConsole creates a console sink. FormatAuto is resolved against out.
func NewConsole(out, errOut io.Writer, format ui.Format) *Console {
	resolved := ui.Resolve(format, out)
	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", resolved.String()).
		Msg("Console created")

	return &Console{out: out, errOut: errOut, format: resolved}
}

// Format returns the resolved output format
func (c *Console) Format() ui.Format {
	return c.format
}

func (c *Console) Info(msg string) {
	c.write(c.out, msg)
}

func (c *Console) Warning(msg string) {
	c.write(c.errOut, "<warning>"+msg+"</warning>")
}

func (c *Console) Error(msg string) {
	c.write(c.errOut, "<error>"+msg+"</error>")
}

func (c *Console) write(w io.Writer, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.format == ui.FormatTerminal {
		msg = style.Render(msg)
	} else {
		msg = style.Strip(msg)
	}
	_, _ = fmt.Fprintln(w, msg)
}

// Line is a message recorded by Buffer
type Line struct {
	Level Level
	Text  string
}

// Buffer records messages with markup stripped
type Buffer struct {
	mu    sync.Mutex
	lines []Line
}

// NewBuffer creates an empty recording sink
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Info(msg string)    { b.add(LevelInfo, msg) }
func (b *Buffer) Warning(msg string) { b.add(LevelWarning, msg) }
func (b *Buffer) Error(msg string)   { b.add(LevelError, msg) }

func (b *Buffer) add(level Level, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, Line{Level: level, Text: style.Strip(msg)})
}

// Lines returns a copy of the recorded messages
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Line(nil), b.lines...)
}

// Messages returns the text of recorded messages at the given level
func (b *Buffer) Messages(level Level) []string {
	var out []string
	for _, line := range b.Lines() {
		if line.Level == level {
			out = append(out, line.Text)
		}
	}
	return out
}

// String joins all recorded messages, one per line
func (b *Buffer) String() string {
	lines := b.Lines()
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// Discard drops every message
var Discard IO = discard{}

type discard struct{}

func (discard) Info(string)    {}
func (discard) Warning(string) {}
func (discard) Error(string)   {}
