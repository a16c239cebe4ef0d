package trace

import (
	"strings"
	"sync"
)

// Sink receives one line of trace output per instrumented invocation.
// Implementations must preserve append order.
type Sink interface {
	Append(text string)
}

// BufferSink is an in-memory Sink, used by tests and interactive inspection.
type BufferSink struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferSink creates an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Append implements Sink.
func (b *BufferSink) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, text)
}

// Lines returns the appended lines in order.
func (b *BufferSink) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.lines...)
}

// String returns the buffer contents joined by newlines.
func (b *BufferSink) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

// Contains reports whether any appended line contains the substring.
func (b *BufferSink) Contains(substr string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range b.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Reset discards all appended lines.
func (b *BufferSink) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// WriterSink adapts any line-oriented writer function to a Sink.
type WriterSink struct {
	writeLine func(string)
}

// NewWriterSink creates a Sink that passes each line to writeLine.
func NewWriterSink(writeLine func(string)) *WriterSink {
	return &WriterSink{writeLine: writeLine}
}

// Append implements Sink.
func (w *WriterSink) Append(text string) {
	if w.writeLine != nil {
		w.writeLine(text)
	}
}
