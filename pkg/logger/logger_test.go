package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithServiceAndComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "jobportal"})

	l := With("session")
	l.Debug().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "jobportal" || entry["component"] != "session" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second, Level: "debug"})

	l := Get()
	l.Info().Msg("x")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_DefaultServiceName(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Output: &buf})
	l := With(ComponentHTTP)
	l.Info().Msg("up")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["service"] != DefaultService || entry["component"] != "http" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_TokensNeverWritten(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Output: &buf})
	l := With(ComponentSession)
	l.Warn().
		Str("token", "eyJhbGciOi.secret").
		Str("password", `p"w`).
		Str("email", "a@x.com").
		Msg("sign in failed")

	out := buf.String()
	if strings.Contains(out, "eyJhbGciOi") || strings.Contains(out, `p\"w`) {
		t.Fatalf("secret leaked: %s", out)
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("redacted line is not JSON: %q: %v", out, err)
	}
	if entry["token"] != redacted || entry["password"] != redacted || entry["email"] != "a@x.com" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_PrettyOutputRedacted(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Output: &buf, Pretty: true})
	l := Get()
	l.Info().Str("access_token", "abc123").Msg("stored")

	if strings.Contains(buf.String(), "abc123") || !strings.Contains(buf.String(), redacted) {
		t.Fatalf("console output not redacted: %s", buf.String())
	}
}

func TestRedact(t *testing.T) {
	cases := map[string]string{
		`{"level":"info"}`:                         `{"level":"info"}`,
		`{"token":"a","x":1}`:                      `{"token":"[redacted]","x":1}`,
		`{"token":"a\"b","token_store":"redis"}`:  `{"token":"[redacted]","token_store":"redis"}`,
		`{"authorization":"Bearer x","token":"y"}`: `{"authorization":"[redacted]","token":"[redacted]"}`,
		`{"token":"unterminated`:                   `{"token":"unterminated`,
	}
	for in, want := range cases {
		if got := string(Redact([]byte(in))); got != want {
			t.Fatalf("Redact(%s) = %s, want %s", in, got, want)
		}
	}
}
