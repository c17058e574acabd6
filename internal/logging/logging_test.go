package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesRedactedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pomichnyk.log")
	logger, closeLog, err := New("info", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("resolved", Utterance("додай контакт +380671234567"), zap.String("command", "add_contact"))
	logger.Debug("dropped below level")
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(bytes)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d:\n%s", len(lines), string(bytes))
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected JSON log line, got %v", err)
	}
	if record["utterance"] != "додай контакт <phone>" {
		t.Fatalf("expected redacted utterance, got %v", record["utterance"])
	}
	if record["command"] != "add_contact" {
		t.Fatalf("expected command field, got %v", record["command"])
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat log failed: %v", err)
		}
		if perms := info.Mode().Perm(); perms&0o077 != 0 {
			t.Fatalf("expected private log file, got %o", perms)
		}
	}
}

func TestNewOffIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomichnyk.log")
	logger, closeLog, err := New("off", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Error("ignored")
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file for level off")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Fatalf("expected unknown level to be rejected")
	}
}
