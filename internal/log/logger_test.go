package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Format: "json", Level: slog.LevelDebug, Component: ComponentTracker})

	logger.Info("transaction added", FieldKind, "earn")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentTracker {
		t.Fatalf("component = %v", rec[FieldComponent])
	}
	if rec[FieldKind] != "earn" {
		t.Fatalf("kind = %v", rec[FieldKind])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf, Level: slog.LevelInfo})
	sess := base.WithComponent(ComponentSession)

	if sess.Component() != ComponentSession || base.Component() != ComponentApp {
		t.Fatalf("components: base=%s sess=%s", base.Component(), sess.Component())
	}
	sess.Warn("expired")
	if !strings.Contains(buf.String(), "component=session") {
		t.Fatalf("missing component in %q", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if got := FromContext(context.Background()); got == nil || got.Component() != "unknown" {
		t.Fatalf("unexpected fallback logger: %+v", got)
	}
}

func TestIntoContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Level: slog.LevelInfo}).With(FieldRequestID, "req_1")

	FromContext(IntoContext(context.Background(), logger)).Info("inside")

	if !strings.Contains(buf.String(), "request_id=req_1") {
		t.Fatalf("missing request id in %q", buf.String())
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf, Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodPost, "/goals", nil)

	sl.LogHTTPEnd(context.Background(), req, http.StatusUnprocessableEntity, 3, "1.2.3.4")
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("4xx should log at warn: %q", buf.String())
	}

	buf.Reset()
	sl.LogRejected(context.Background(), OpCreate, errors.New("invalid amount"), nil)
	out := buf.String()
	if !strings.Contains(out, "operation=create") || !strings.Contains(out, `error="invalid amount"`) {
		t.Fatalf("unexpected rejection log: %q", out)
	}
}
