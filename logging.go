package networth

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// Log is the package logger. The CLI raises or lowers its level from
// configuration; tests usually call Silence.
var Log = log.Logger{
	Level:  log.InfoLevel,
	Writer: &log.ConsoleWriter{ColorOutput: false, Writer: os.Stderr},
}

// Silence discards all log output. Used by tests.
func Silence() {
	Log.Writer = log.IOWriter{Writer: io.Discard}
}
