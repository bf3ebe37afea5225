package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf), WithFormat(FormatJSON)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "fetched events", String("match", "3857256"), Int("count", 3))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "fetched events" {
		t.Errorf("unexpected msg: %v", line["msg"])
	}
	if line["match"] != "3857256" {
		t.Errorf("unexpected match field: %v", line["match"])
	}
	if src, _ := line["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	ctx := context.Background()
	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("SetLevelString: %v", err)
	}
	Get().Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug should be emitted after SetLevelString, got %q", buf.String())
	}

	if err := SetLevelString("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf), WithFormat(FormatJSON)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("provider").Info(context.Background(), "test message", String("k", "v"))
	if !strings.Contains(buf.String(), `"provider":{`) {
		t.Fatalf("named logger should group fields, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "discarded", Error(nil))
}
