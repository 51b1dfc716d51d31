package apple2

import (
	"fmt"
	"io"
	"log"
)

// Logger wraps a stdlib *log.Logger with three severity levels: plain
// line-oriented text, each line prefixed with its severity tag. It
// writes to whatever io.Writer it is given and opens no file itself;
// the CLI passes standard output. Start-up failures are reported once
// by the CLI layer, which exits non-zero without needing a Logger.
type Logger struct {
	out *log.Logger
}

// NewLogger wraps w (typically an opened log file) with no extra
// framing -- the severity tag carries the line's timestamp-equivalent
// context, matching the teacher's own log.New(f, "", 0) call.
func NewLogger(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", 0)}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.out.Print("INFO  " + fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.out.Print("DEBUG " + fmt.Sprintf(format, args...))
}

func (l *Logger) Critical(format string, args ...interface{}) {
	l.out.Print("CRIT  " + fmt.Sprintf(format, args...))
}
