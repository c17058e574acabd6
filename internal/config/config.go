package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ashwch/pomichnyk/internal/appdirs"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/pelletier/go-toml/v2"
)

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
}

type MatcherConfig struct {
	MinConfidence float64 `toml:"min_confidence" json:"min_confidence"`
	Suggestions   int     `toml:"suggestions" json:"suggestions"`
	Learn         bool    `toml:"learn" json:"learn"`
	PhrasesFile   string  `toml:"phrases_file,omitempty" json:"phrases_file,omitempty"`
}

type StorageConfig struct {
	Dir string `toml:"dir,omitempty" json:"dir,omitempty"`
}

type BirthdaysConfig struct {
	DaysAhead int `toml:"days_ahead" json:"days_ahead"`
}

type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file,omitempty" json:"file,omitempty"`
}

type JournalConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
}

type Config struct {
	Version   int             `toml:"version" json:"version"`
	Locale    string          `toml:"locale" json:"locale"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Matcher   MatcherConfig   `toml:"matcher" json:"matcher"`
	Storage   StorageConfig   `toml:"storage" json:"storage"`
	Birthdays BirthdaysConfig `toml:"birthdays" json:"birthdays"`
	Log       LogConfig       `toml:"log" json:"log"`
	Journal   JournalConfig   `toml:"journal" json:"journal"`
}

func Default() Config {
	return Config{
		Version: 1,
		Locale:  "auto",
		UI: UIConfig{
			Backend: "auto",
		},
		Matcher: MatcherConfig{
			MinConfidence: 0.3,
			Suggestions:   3,
			Learn:         true,
		},
		Birthdays: BirthdaysConfig{
			DaysAhead: 7,
		},
		Log: LogConfig{
			Level: "info",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	cfg, err = Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Load reads a config file, filling any missing or invalid value with its
// default.
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	// Booleans cannot tell "unset" from false, so start from the defaults.
	cfg := Default()
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".pomichnyk-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure config file permissions: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.Locale = normalizeLocaleSetting(c.Locale, defaults.Locale)
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	c.UI.Backend = normalizeUIBackend(c.UI.Backend, defaults.UI.Backend)
	if c.Matcher.MinConfidence <= 0 || c.Matcher.MinConfidence > 1 {
		c.Matcher.MinConfidence = defaults.Matcher.MinConfidence
	}
	if c.Matcher.Suggestions < 0 {
		c.Matcher.Suggestions = defaults.Matcher.Suggestions
	}
	c.Matcher.PhrasesFile = strings.TrimSpace(c.Matcher.PhrasesFile)
	c.Storage.Dir = strings.TrimSpace(c.Storage.Dir)
	if c.Birthdays.DaysAhead <= 0 {
		c.Birthdays.DaysAhead = defaults.Birthdays.DaysAhead
	}
	c.Log.Level = normalizeLogLevel(c.Log.Level, defaults.Log.Level)
	c.Log.File = strings.TrimSpace(c.Log.File)
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "locale":
		c.Locale = normalizeLocaleSetting(value, "")
		if c.Locale == "" {
			return fmt.Errorf("locale must be 'auto' or a locale like uk, uk-UA, en, en-US")
		}
	case "ui.backend":
		c.UI.Backend = normalizeUIBackend(value, "")
		if c.UI.Backend == "" {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|huh|tview|plain")
		}
	case "matcher.min_confidence":
		n, err := parseConfidence(value)
		if err != nil {
			return fmt.Errorf("matcher.min_confidence must be between 0 and 1")
		}
		c.Matcher.MinConfidence = n
	case "matcher.suggestions":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("matcher.suggestions must be zero or a positive number")
		}
		c.Matcher.Suggestions = n
	case "matcher.learn":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("matcher.learn must be boolean")
		}
		c.Matcher.Learn = b
	case "matcher.phrases_file":
		c.Matcher.PhrasesFile = value
	case "storage.dir":
		c.Storage.Dir = value
	case "birthdays.days_ahead":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n > 366 {
			return fmt.Errorf("birthdays.days_ahead must be a number between 1 and 366")
		}
		c.Birthdays.DaysAhead = n
	case "log.level":
		c.Log.Level = normalizeLogLevel(value, "")
		if c.Log.Level == "" {
			return fmt.Errorf("log.level must be one of debug|info|warn|error|off")
		}
	case "log.file":
		c.Log.File = value
	case "journal.enabled":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("journal.enabled must be boolean")
		}
		c.Journal.Enabled = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))

	switch key {
	case "locale":
		return c.Locale, nil
	case "ui.backend":
		return c.UI.Backend, nil
	case "matcher.min_confidence":
		return fmt.Sprintf("%g", c.Matcher.MinConfidence), nil
	case "matcher.suggestions":
		return strconv.Itoa(c.Matcher.Suggestions), nil
	case "matcher.learn":
		return strconv.FormatBool(c.Matcher.Learn), nil
	case "matcher.phrases_file":
		return c.Matcher.PhrasesFile, nil
	case "storage.dir":
		return c.Storage.Dir, nil
	case "birthdays.days_ahead":
		return strconv.Itoa(c.Birthdays.DaysAhead), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	case "journal.enabled":
		return strconv.FormatBool(c.Journal.Enabled), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func Keys() []string {
	return []string{
		"locale",
		"ui.backend",
		"matcher.min_confidence",
		"matcher.suggestions",
		"matcher.learn",
		"matcher.phrases_file",
		"storage.dir",
		"birthdays.days_ahead",
		"log.level",
		"log.file",
		"journal.enabled",
	}
}

func (c Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return expandHome(c.Storage.Dir)
	}
	return appdirs.DataDir()
}

func (c Config) PhrasesPath() (string, error) {
	if c.Matcher.PhrasesFile != "" {
		return expandHome(c.Matcher.PhrasesFile)
	}
	return appdirs.ConfigFile("phrases.yaml")
}

func (c Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return appdirs.StateFilePath("pomichnyk.log")
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "так":
		return true, nil
	case "0", "false", "no", "off", "ні":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool: %s", value)
	}
}

func parseConfidence(value string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > 1 {
		return 0, fmt.Errorf("confidence must be between 0 and 1")
	}
	return n, nil
}

func normalizeUIBackend(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "auto", "bubbletea", "huh", "tview", "plain":
		return normalized
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func normalizeLogLevel(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "debug", "info", "warn", "error", "off":
		return normalized
	case "warning":
		return "warn"
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func normalizeLocaleSetting(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = strings.TrimSpace(fallback)
	}
	if strings.EqualFold(trimmed, "auto") {
		return "auto"
	}
	return i18n.NormalizeLocale(trimmed)
}
