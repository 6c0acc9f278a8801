// Package logger holds the process-wide zerolog logger of the job portal
// client. Init once in main, then hand components their own logger via With.
//
// Entries never carry a bearer token: any string field named in
// secretFields is masked before it is written.
package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output (coloured, text-based).
	// Use false in production to emit pure JSON.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every entry as the "service" field.
	// Defaults to DefaultService.
	Service string
}

// DefaultService is the "service" field value when Options.Service is empty.
const DefaultService = "jobportal"

// Component names handed to With by the wiring in cmd/jobportal.
const (
	ComponentSession = "session"
	ComponentHTTP    = "http"
	ComponentStore   = "token_store"
)

// secretFields are masked by redactHook wherever they appear.
var secretFields = []string{"token", "access_token", "password", "authorization"}

const redacted = "[redacted]"

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init initialises the singleton logger. Safe to call multiple times – only
// the first call has any effect (singleton guarantee via sync.Once).
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		service := opts.Service
		if service == "" {
			service = DefaultService
		}
		instance = zerolog.New(redactWriter{out}).
			Level(lvl).
			With().
			Timestamp().
			Str("service", service).
			Logger()

		initialized = true
	})
	return instance
}

// Get returns the singleton logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// With returns the singleton logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// redactWriter masks secret fields in each JSON entry before it reaches the
// underlying writer. Console output is rendered from the same JSON, so the
// mask applies to both modes.
type redactWriter struct {
	out io.Writer
}

func (w redactWriter) Write(p []byte) (int, error) {
	if _, err := w.out.Write(Redact(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Redact replaces the values of secret string fields in a single JSON log
// line. Lines that contain none of them are returned unchanged.
func Redact(line []byte) []byte {
	for _, f := range secretFields {
		key := []byte(`"` + f + `":"`)
		for from := 0; ; {
			i := bytes.Index(line[from:], key)
			if i < 0 {
				break
			}
			start := from + i + len(key)
			end := closingQuote(line, start)
			if end < 0 {
				break
			}
			masked := make([]byte, 0, len(line)-(end-start)+len(redacted))
			masked = append(masked, line[:start]...)
			masked = append(masked, redacted...)
			masked = append(masked, line[end:]...)
			line = masked
			from = start + len(redacted)
		}
	}
	return line
}

// closingQuote returns the index of the unescaped quote ending the JSON
// string that starts at i, or -1.
func closingQuote(b []byte, i int) int {
	for ; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// Reset tears down the singleton so that the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

// parseLevel converts a string to a zerolog.Level.
//
//	"trace" → TraceLevel (-1)
//	"debug" → DebugLevel ( 0)
//	"info"  → InfoLevel  ( 1)  ← default
//	"warn"  → WarnLevel  ( 2)
//	"error" → ErrorLevel ( 3)
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
