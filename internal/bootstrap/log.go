package bootstrap

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log is the timestamped append-only progress log the steps write to.
// Every line is prefixed with a wall-clock timestamp so a boot can be
// reconstructed after the fact.
type Log struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	now    func() time.Time
}

// OpenLog opens (or creates) the log file at path in append mode and
// mirrors every line to stderr.
func OpenLog(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	return &Log{
		out:    io.MultiWriter(f, os.Stderr),
		closer: f,
		now:    time.Now,
	}, nil
}

// NewLog returns a log writing to w. Used by tests and the script
// subcommand where no log file is wanted.
func NewLog(w io.Writer) *Log {
	return &Log{out: w, now: time.Now}
}

// Printf appends one timestamped line.
func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", l.now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

// Writer returns a writer for raw command output, appended without
// timestamps.
func (l *Log) Writer() io.Writer {
	return &rawWriter{l: l}
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

type rawWriter struct {
	l *Log
}

func (w *rawWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.out.Write(p)
}
