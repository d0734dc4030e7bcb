package core

// LineLog is a bounded, append-only list of messages.
// Once full, every Push discards the oldest line.
type LineLog struct {
	max   int
	lines []string
}

// NewLineLog creates a log holding at most max lines, pre-filled with seed lines.
func NewLineLog(max int, seed ...string) *LineLog {
	l := &LineLog{max: max, lines: make([]string, 0, max)}
	for _, line := range seed {
		l.Push(line)
	}
	return l
}

// Push appends a message, trimming the front to stay within capacity.
func (l *LineLog) Push(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns a copy of the retained messages, oldest first.
func (l *LineLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns up to n of the most recent messages, oldest first.
func (l *LineLog) Tail(n int) []string {
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}

// Len returns the number of retained messages.
func (l *LineLog) Len() int {
	return len(l.lines)
}
