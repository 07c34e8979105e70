package deploy

import (
	"bytes"
	"context"
	"log/slog"
)

// Adapts container process output to the daemon log, one log record per
// line. Partial lines are buffered until a newline or a final Flush.
type logWriter struct {
	app   string
	level slog.Level
	buf   bytes.Buffer
}

func newLogWriter(app string, level slog.Level) *logWriter {
	return &logWriter{app: app, level: level}
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)

	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it buffered for the next write.
			w.buf.WriteString(line)
			break
		}
		w.emit(line[:len(line)-1])
	}

	return len(p), nil
}

// Logs any buffered partial line. Called once the process has exited.
func (w *logWriter) Flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	if line == "" {
		return
	}
	slog.Log(context.Background(), w.level, line, "app", w.app)
}
