package terminal

import "sync"

// Severity classifies a recorded line.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityVerbose
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Line is a single recorded terminal line.
type Line struct {
	Severity Severity
	Text     string
}

// Buffer records lines in memory. It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	lines []Line
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) WriteLine(msg string)        { b.add(SeverityInfo, msg) }
func (b *Buffer) WriteVerboseLine(msg string) { b.add(SeverityVerbose, msg) }
func (b *Buffer) WriteWarningLine(msg string) { b.add(SeverityWarning, msg) }
func (b *Buffer) WriteErrorLine(msg string)   { b.add(SeverityError, msg) }

func (b *Buffer) add(s Severity, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, Line{Severity: s, Text: msg})
}

// Lines returns a copy of all recorded lines.
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Errors returns the text of recorded error lines.
func (b *Buffer) Errors() []string {
	return b.filter(SeverityError)
}

// Warnings returns the text of recorded warning lines.
func (b *Buffer) Warnings() []string {
	return b.filter(SeverityWarning)
}

func (b *Buffer) ErrorCount() int   { return len(b.Errors()) }
func (b *Buffer) WarningCount() int { return len(b.Warnings()) }

// Reset drops all recorded lines.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

func (b *Buffer) filter(s Severity) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, l := range b.lines {
		if l.Severity == s {
			out = append(out, l.Text)
		}
	}
	return out
}
