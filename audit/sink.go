package audit

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tessera-sh/tessera-core/tlog"
)

// Sink accepts opaque, append-only audit entries. The core never retries a
// Record call on the caller's behalf and never blocks an operation's
// success on a Sink failure; a Record error is logged and swallowed,
// exactly as the teacher's journal.Audit does for marshal failures.
type Sink interface {
	Record(entry Entry)
}

// WriterSink writes each entry as one JSON line to the wrapped io.Writer.
// The zero value writes to os.Stderr, separating audit output from
// application logs the way the teacher's journal package does.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a WriterSink writing to w. Passing nil defaults to
// os.Stderr.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stderr
	}
	return &WriterSink{w: w}
}

func (s *WriterSink) Record(entry Entry) {
	line := logLine{Timestamp: entry.Timestamp, Entry: entry}
	body, err := line.marshal()
	if err != nil {
		tlog.Log().Error("audit entry marshal failed", "event_type", entry.EventType, "error", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.w
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintln(w, string(body))
}

// MemorySink accumulates entries in memory, for tests that assert on what
// was audited without parsing stderr.
type MemorySink struct {
	mu      sync.Mutex
	Entries []Entry
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Record(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, entry)
}

// Find returns the last recorded entry for the given event type, or false
// if none was recorded.
func (s *MemorySink) Find(eventType EventType) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if s.Entries[i].EventType == eventType {
			return s.Entries[i], true
		}
	}
	return Entry{}, false
}
