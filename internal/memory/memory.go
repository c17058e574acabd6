package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ashwch/pomichnyk/internal/appdirs"
	"github.com/ashwch/pomichnyk/internal/command"
)

const storeFileName = "aliases.json"

// Learned aliases start at baseScore and are dropped once they fall to zero.
const (
	baseScore     = 12
	rememberBoost = 24
	reuseBoost    = 3
	rejectPenalty = -8
	maxScore      = 100
)

var ErrInvalidAlias = errors.New("alias needs an utterance and a known command")

// Entry maps one normalized utterance onto the command the user chose for it.
type Entry struct {
	Utterance  string     `json:"utterance"`
	Command    command.ID `json:"command"`
	Score      float64    `json:"score"`
	Uses       int        `json:"uses"`
	Rejections int        `json:"rejections,omitempty"`
	UpdatedAt  string     `json:"updated_at"`
	LastUsedAt string     `json:"last_used_at,omitempty"`
}

// Store is the learned alias table. It is not safe for concurrent mutation;
// the session owns it from a single goroutine.
type Store struct {
	Entries []Entry `json:"entries"`
}

func Path() (string, error) {
	return appdirs.StateFilePath(storeFileName)
}

func Load() (Store, string, error) {
	path, err := Path()
	if err != nil {
		return Store{}, "", err
	}
	store, err := LoadFile(path)
	if err != nil {
		return Store{}, "", err
	}
	return store, path, nil
}

// LoadFile reads a store; a missing file is an empty store.
func LoadFile(path string) (Store, error) {
	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Store{}, nil
	}
	if err != nil {
		return Store{}, fmt.Errorf("could not read alias store: %w", err)
	}
	var store Store
	if err := json.Unmarshal(bytes, &store); err != nil {
		return Store{}, fmt.Errorf("could not parse alias store: %w", err)
	}
	store.normalize()
	return store, nil
}

func Save(path string, store Store) error {
	store.normalize()
	payload, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode alias store: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create alias store dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".pomichnyk-aliases-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp alias file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}
	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp alias file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp alias file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp alias file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace alias file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure alias file: %w", err)
	}
	return nil
}

func (s *Store) normalize() {
	if s == nil {
		return
	}
	entries := make([]Entry, 0, len(s.Entries))
	seen := map[string]struct{}{}
	for _, entry := range s.Entries {
		entry.Utterance = command.Normalize(entry.Utterance)
		if entry.Utterance == "" || !entry.Command.Known() {
			continue
		}
		if entry.Score <= 0 {
			continue
		}
		key := entry.Utterance + "|" + string(entry.Command)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].UpdatedAt > entries[j].UpdatedAt
		}
		return entries[i].Score > entries[j].Score
	})
	s.Entries = entries
}

func (s *Store) Remember(utterance string, id command.ID) error {
	return s.adjust(utterance, id, rememberBoost)
}

func (s *Store) Reinforce(utterance string, id command.ID) error {
	return s.adjust(utterance, id, reuseBoost)
}

// Reject weakens an alias the user turned down; repeated rejections drop it.
func (s *Store) Reject(utterance string, id command.ID) error {
	return s.adjust(utterance, id, rejectPenalty)
}

func (s *Store) adjust(utterance string, id command.ID, delta float64) error {
	normalized := command.Normalize(utterance)
	if normalized == "" || !id.Known() {
		return ErrInvalidAlias
	}

	now := time.Now().UTC().Format(time.RFC3339)
	idx := s.entryIndex(normalized, id)
	if idx < 0 {
		if delta < 0 {
			return nil
		}
		s.Entries = append(s.Entries, Entry{
			Utterance:  normalized,
			Command:    id,
			Score:      clampScore(baseScore + delta),
			Uses:       1,
			UpdatedAt:  now,
			LastUsedAt: now,
		})
		s.normalize()
		return nil
	}

	entry := s.Entries[idx]
	entry.Score = clampScore(entry.Score + delta)
	entry.UpdatedAt = now
	if delta < 0 {
		entry.Rejections++
	} else {
		entry.Uses++
		entry.LastUsedAt = now
	}
	s.Entries[idx] = entry
	s.normalize()
	return nil
}

func (s *Store) Lookup(utterance string) (command.ID, bool) {
	normalized := command.Normalize(utterance)
	if s == nil || normalized == "" {
		return command.None, false
	}
	// Entries stay sorted by score, so the first hit is the strongest.
	for _, entry := range s.Entries {
		if entry.Utterance == normalized {
			return entry.Command, true
		}
	}
	return command.None, false
}

func (s *Store) Forget(utterance string) int {
	normalized := command.Normalize(utterance)
	if normalized == "" {
		return 0
	}
	kept := make([]Entry, 0, len(s.Entries))
	removed := 0
	for _, entry := range s.Entries {
		if entry.Utterance == normalized {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.Entries = kept
	return removed
}

func (s *Store) Top(limit int) []Entry {
	if limit <= 0 {
		limit = 8
	}
	out := make([]Entry, 0, min(limit, len(s.Entries)))
	for _, entry := range s.Entries {
		out = append(out, entry)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (s *Store) entryIndex(normalized string, id command.ID) int {
	for idx, entry := range s.Entries {
		if entry.Utterance == normalized && entry.Command == id {
			return idx
		}
	}
	return -1
}

func (e Entry) String() string {
	return fmt.Sprintf("%-32s -> %s (score %.0f, used %d)", strings.TrimSpace(e.Utterance), e.Command, e.Score, e.Uses)
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > maxScore:
		return maxScore
	default:
		return score
	}
}
