package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashwch/pomichnyk/internal/appdirs"
	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/ashwch/pomichnyk/internal/safety"
)

const fileName = "journal.jsonl"
const maxUtteranceLength = 1024

// Outcomes of one resolved utterance.
const (
	OutcomeOK         = "ok"
	OutcomeRejected   = "rejected"
	OutcomeUnresolved = "unresolved"
)

// Entry is one line of the journal. Utterances are stored redacted.
type Entry struct {
	Utterance  string     `json:"utterance"`
	Command    command.ID `json:"command"`
	Source     string     `json:"source"`
	Confidence float64    `json:"confidence"`
	Outcome    string     `json:"outcome"`
	Timestamp  string     `json:"timestamp"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s  %-14s %-10s %.2f  %s", e.Timestamp, e.Command, e.Outcome, e.Confidence, e.Utterance)
}

func Path() (string, error) {
	return appdirs.StateFilePath(fileName)
}

func Record(path string, ev Entry) error {
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	ev.Utterance = strings.TrimSpace(safety.RedactText(strings.TrimSpace(ev.Utterance)))
	if ev.Utterance == "" {
		return fmt.Errorf("utterance cannot be empty")
	}
	if len(ev.Utterance) > maxUtteranceLength {
		ev.Utterance = truncate(ev.Utterance, maxUtteranceLength)
	}
	if ev.Outcome == "" {
		ev.Outcome = OutcomeOK
	}

	if err := appdirs.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("could not open journal: %w", err)
	}
	defer f.Close()
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure journal permissions: %w", err)
	}

	// Redaction markers like <email> stay readable in the file.
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return fmt.Errorf("could not write journal entry: %w", err)
	}
	return nil
}

// Recent returns the last limit entries, oldest first. Unreadable lines are
// skipped and a missing journal is empty.
func Recent(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read journal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var entries []Entry
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var ev Entry
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		entries = append(entries, ev)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan journal: %w", err)
	}
	return entries, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
