package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	cases := map[Level]slog.Level{
		LevelDebug:    slog.LevelDebug,
		LevelInfo:     slog.LevelInfo,
		LevelWarn:     slog.LevelWarn,
		LevelError:    slog.LevelError,
		Level("loud"): slog.LevelInfo,
	}
	for level, want := range cases {
		if got := level.ToSlogLevel(); got != want {
			t.Errorf("%s: got %v want %v", level, got, want)
		}
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("GALLERY_TEST_LOG_LEVEL", "debug")
	env := &Env{Level: "GALLERY_TEST_LOG_LEVEL", Format: "GALLERY_TEST_LOG_FORMAT"}

	var cfg Config
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Level != LevelDebug || cfg.Format != FormatText {
		t.Fatalf("unexpected config %+v", cfg)
	}

	bad := Config{Format: "xml"}
	if err := bad.Finalize(nil); err == nil || !strings.Contains(err.Error(), "invalid log format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := Config{Level: LevelInfo, Format: FormatText}
	cfg.Merge(&Config{Format: FormatJSON})
	if cfg.Level != LevelInfo || cfg.Format != FormatJSON {
		t.Fatalf("unexpected merge result %+v", cfg)
	}
	cfg.Merge(nil)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelWarn, Format: FormatJSON}, &buf)
	logger.Info("hidden")
	logger.Warn("delete failed", "id", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %q", buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record["msg"] != "delete failed" || record["id"] != float64(3) {
		t.Fatalf("unexpected record %v", record)
	}
}
