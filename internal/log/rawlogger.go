package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records the exact bytes of every generated file.
type RawLogger interface {
	Log(path string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a one-line header with timestamp, path and size, followed by
// the file contents verbatim.
func (r *rawLogger) Log(path string, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "%s %s: %d bytes, %d lines\n",
		time.Now().Format("2006/01/02 15:04:05"),
		path,
		len(data),
		bytes.Count(data, []byte{'\n'}))
	out.Write(data)
	if data[len(data)-1] != '\n' {
		out.WriteByte('\n')
	}

	r.mu.Lock()
	_, _ = r.w.Write(out.Bytes())
	r.mu.Unlock()
}
