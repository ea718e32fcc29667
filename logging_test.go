package agl

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("dispatching request", "op", "emotion.analyze")

	if !strings.Contains(stderr.String(), "dispatching request") {
		t.Errorf("stderr output missing message: %q", stderr.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("file output is not JSON: %v\n%s", err, file.String())
	}
	if entry["msg"] != "dispatching request" || entry["op"] != "emotion.analyze" {
		t.Errorf("unexpected entry: %v", entry)
	}

	t.Run("level filtering applies to both outputs", func(t *testing.T) {
		stderr.Reset()
		file.Reset()
		logger.Debug("hidden")
		if stderr.Len() != 0 || file.Len() != 0 {
			t.Error("debug record should be filtered at info level")
		}
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("empty log file is stderr only", func(t *testing.T) {
		logger, cleanup := SetupLogger("", slog.LevelInfo)
		defer cleanup()
		if logger == nil {
			t.Fatal("nil logger")
		}
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agl.log")
		logger, cleanup := SetupLogger(path, slog.LevelInfo)
		logger.Info("hello")
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	})

	t.Run("unopenable file falls back to stderr", func(t *testing.T) {
		logger, cleanup := SetupLogger("/nonexistent-dir/agl.log", slog.LevelInfo)
		defer cleanup()
		if logger == nil {
			t.Fatal("nil logger")
		}
	})
}
