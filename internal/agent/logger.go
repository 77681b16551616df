package agent

import (
	"io"
	"log/slog"
	"sync"

	"hwgauge/internal/config"
)

// DefaultTailSize is how much log output TailWriter keeps while the
// terminal is owned by the dashboard.
const DefaultTailSize = 256 << 10

func BuildLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	hOpts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(w, hOpts))
	}
	return slog.New(slog.NewTextHandler(w, hOpts))
}

// TailWriter keeps the most recent max bytes written to it, cut at a line
// boundary when possible.
type TailWriter struct {
	mu      sync.Mutex
	max     int
	buf     []byte
	dropped bool
}

func NewTailWriter(max int) *TailWriter {
	if max <= 0 {
		max = DefaultTailSize
	}
	return &TailWriter{max: max}
}

func (t *TailWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		cut := over
		for i := over; i < len(t.buf); i++ {
			if t.buf[i-1] == '\n' {
				cut = i
				break
			}
		}
		t.buf = append(t.buf[:0], t.buf[cut:]...)
		t.dropped = true
	}
	return len(p), nil
}

// Flush writes the retained tail to w and empties the buffer.
func (t *TailWriter) Flush(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dropped {
		if _, err := io.WriteString(w, "... earlier log output truncated\n"); err != nil {
			return err
		}
	}
	_, err := w.Write(t.buf)
	t.buf = t.buf[:0]
	t.dropped = false
	return err
}

func (t *TailWriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}
