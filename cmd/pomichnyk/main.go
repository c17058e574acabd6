package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/ashwch/pomichnyk/internal/assistant"
	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/ashwch/pomichnyk/internal/config"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/journal"
	"github.com/ashwch/pomichnyk/internal/logging"
	"github.com/ashwch/pomichnyk/internal/memory"
	"github.com/ashwch/pomichnyk/internal/router"
	"github.com/ashwch/pomichnyk/internal/storage"
	"github.com/ashwch/pomichnyk/internal/ui"
	"go.uber.org/zap"
)

var version = "dev"

const (
	aliasListLimit   = 20
	historyListLimit = 20
)

type options struct {
	Locale        string
	UI            string
	DataDir       string
	MinConfidence string
	Days          string
	LogLevel      string
	Forget        string
	Save          bool
	Version       bool
	ShowConfig    bool
	Explain       bool
	JSON          bool
	Aliases       bool
	Stats         bool
	History       bool
}

type response struct {
	Message     string   `json:"message,omitempty"`
	Results     any      `json:"results,omitempty"`
	ConfigPath  string   `json:"config_path,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// explanation is the --explain payload: the routing decision plus every
// non-zero candidate.
type explanation struct {
	Decision   router.Decision `json:"decision"`
	Candidates []command.Match `json:"candidates"`
	Threshold  float64         `json:"threshold"`
}

func main() {
	opts, prompt, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Println(version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, prompt, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pomichnyk: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func parseArgs(args []string) (options, string, error) {
	fs := flag.NewFlagSet("pomichnyk", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts options
	fs.StringVar(&opts.Locale, "locale", "", "override locale: auto|uk|en")
	fs.StringVar(&opts.UI, "ui", "", "override ui backend: auto|bubbletea|huh|tview|plain")
	fs.StringVar(&opts.DataDir, "data-dir", "", "override the contacts and notes directory")
	fs.StringVar(&opts.MinConfidence, "min-confidence", "", "override the command acceptance threshold (0,1]")
	fs.StringVar(&opts.Days, "days", "", "override how many days ahead birthdays are listed")
	fs.StringVar(&opts.LogLevel, "log-level", "", "override log level: debug|info|warn|error|off")
	fs.StringVar(&opts.Forget, "forget", "", "forget learned aliases for a phrase and exit")
	fs.BoolVar(&opts.Save, "save", false, "persist overrides")
	fs.BoolVar(&opts.Version, "version", false, "print version")
	fs.BoolVar(&opts.ShowConfig, "show-config", false, "show effective settings and exit")
	fs.BoolVar(&opts.Explain, "explain", false, "show how the prompt resolves and exit")
	fs.BoolVar(&opts.JSON, "json", false, "output JSON")
	fs.BoolVar(&opts.Aliases, "aliases", false, "list learned aliases and exit")
	fs.BoolVar(&opts.Stats, "stats", false, "show address book statistics and exit")
	fs.BoolVar(&opts.History, "history", false, "show recently resolved commands and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, "", err
	}
	prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.Explain && prompt == "" {
		return options{}, "", fmt.Errorf("--explain needs a prompt, e.g. pomichnyk --explain додай контакт")
	}
	opts.Forget = strings.TrimSpace(opts.Forget)
	return opts, prompt, nil
}

func flagOverrides(opts options) map[string]string {
	changes := map[string]string{}
	add := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			changes[key] = value
		}
	}
	add("locale", opts.Locale)
	add("ui.backend", opts.UI)
	add("storage.dir", opts.DataDir)
	add("matcher.min_confidence", opts.MinConfidence)
	add("birthdays.days_ahead", opts.Days)
	add("log.level", opts.LogLevel)
	return changes
}

func applyOverrides(cfg *config.Config, changes map[string]string) error {
	for _, key := range sortedKeys(changes) {
		if err := cfg.Set(key, changes[key]); err != nil {
			return fmt.Errorf("invalid option %s=%s: %w", key, changes[key], err)
		}
	}
	return nil
}

func run(ctx context.Context, opts options, prompt string, in *os.File, out *os.File) error {
	cfg, cfgPath, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	changes := flagOverrides(opts)
	if opts.Save && len(changes) > 0 {
		// Environment overrides stay out of the saved file.
		persisted := cfg
		if err := applyOverrides(&persisted, changes); err != nil {
			return err
		}
		if err := config.Save(cfgPath, persisted); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := applyOverrides(&cfg, changes); err != nil {
		return err
	}

	if opts.ShowConfig {
		printResponse(out, response{Message: "effective settings", Results: cfg, ConfigPath: cfgPath}, opts.JSON)
		return nil
	}
	if opts.Save && len(changes) > 0 && prompt == "" && !opts.Aliases && !opts.Stats && !opts.History && opts.Forget == "" {
		suggestions := make([]string, 0, len(changes))
		for _, key := range sortedKeys(changes) {
			suggestions = append(suggestions, fmt.Sprintf("%s=%s", key, changes[key]))
		}
		printResponse(out, response{Message: "saved settings", ConfigPath: cfgPath, Suggestions: suggestions}, opts.JSON)
		return nil
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	phrasesPath, err := cfg.PhrasesPath()
	if err != nil {
		return err
	}
	registry, err := command.LoadWithOverlay(phrasesPath)
	if err != nil {
		return err
	}

	aliases, aliasPath, err := memory.Load()
	if err != nil {
		return fmt.Errorf("could not load aliases: %w", err)
	}

	journalPath, err := journal.Path()
	if err != nil {
		return err
	}
	if opts.History {
		return printHistory(out, journalPath, opts.JSON)
	}
	if !cfg.Journal.Enabled {
		journalPath = ""
	}

	if opts.Aliases {
		printAliases(out, aliases, opts.JSON)
		return nil
	}
	if opts.Forget != "" {
		removed := aliases.Forget(opts.Forget)
		if removed > 0 {
			if err := memory.Save(aliasPath, aliases); err != nil {
				return err
			}
		}
		printResponse(out, response{Message: fmt.Sprintf("forgot %d alias(es) for %q", removed, opts.Forget)}, opts.JSON)
		return nil
	}
	if opts.Explain {
		r := router.New(registry, router.Options{
			MinConfidence: cfg.Matcher.MinConfidence,
			Suggestions:   cfg.Matcher.Suggestions,
			Aliases:       &aliases,
		})
		printExplanation(out, explanation{
			Decision:   r.Route(prompt),
			Candidates: registry.Rank(prompt, 0),
			Threshold:  r.MinConfidence(),
		}, opts.JSON)
		return nil
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	store := storage.New(dataDir)

	if opts.Stats {
		book, _, err := store.LoadContacts()
		if err != nil {
			return err
		}
		notes, _, err := store.LoadNotes()
		if err != nil {
			return err
		}
		stats := book.Stats(cfg.Birthdays.DaysAhead, time.Now())
		printResponse(out, response{
			Message: fmt.Sprintf("%d contacts, %d notes", stats.Total, notes.Len()),
			Results: stats,
		}, opts.JSON)
		return nil
	}

	catalog := i18n.LoadCatalog(cfg.Locale)
	session, err := assistant.New(assistant.Options{
		Registry:      registry,
		Catalog:       catalog,
		Store:         store,
		Aliases:       &aliases,
		AliasPath:     aliasPath,
		Learn:         cfg.Matcher.Learn,
		MinConfidence: cfg.Matcher.MinConfidence,
		Suggestions:   cfg.Matcher.Suggestions,
		DaysAhead:     cfg.Birthdays.DaysAhead,
		Backend:       ui.Effective(cfg.UI.Backend, in, out),
		Logger:        logger,
		JournalPath:   journalPath,
	})
	if err != nil {
		return err
	}
	logger.Info("session started",
		zap.String("locale", catalog.Locale),
		zap.String("data_dir", dataDir),
		zap.Int("contacts", session.Contacts().Len()),
		zap.Int("notes", session.Notes().Len()),
	)

	if prompt != "" {
		return session.Execute(ctx, prompt, in, out)
	}
	return session.Run(ctx, in, out)
}

func printAliases(out io.Writer, store memory.Store, asJSON bool) {
	entries := store.Top(aliasListLimit)
	if asJSON {
		printResponse(out, response{Message: "learned aliases", Results: entries}, true)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No learned aliases.")
		return
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry.String())
	}
}

func printHistory(out io.Writer, path string, asJSON bool) error {
	entries, err := journal.Recent(path, historyListLimit)
	if err != nil {
		return err
	}
	if asJSON {
		printResponse(out, response{Message: "recent commands", Results: entries}, true)
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recorded commands.")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry.String())
	}
	return nil
}

func printExplanation(out io.Writer, ex explanation, asJSON bool) {
	if asJSON {
		encoded, _ := json.MarshalIndent(ex, "", "  ")
		fmt.Fprintln(out, string(encoded))
		return
	}
	d := ex.Decision
	fmt.Fprintf(out, "command: %s\n", d.ID)
	fmt.Fprintf(out, "confidence: %.2f (threshold %.2f)\n", d.Confidence, ex.Threshold)
	fmt.Fprintf(out, "accepted: %t\n", d.Accepted)
	fmt.Fprintf(out, "source: %s\n", d.Source)
	if d.Query != "" {
		fmt.Fprintf(out, "query: %s\n", d.Query)
	}
	for _, candidate := range ex.Candidates {
		fmt.Fprintf(out, "- %-15s %.2f\n", candidate.ID, candidate.Confidence)
	}
}

func printResponse(out io.Writer, payload response, asJSON bool) {
	if asJSON {
		encoded, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Fprintln(out, string(encoded))
		return
	}
	if payload.Message != "" {
		fmt.Fprintln(out, payload.Message)
	}
	for _, suggestion := range payload.Suggestions {
		fmt.Fprintf(out, "- %s\n", suggestion)
	}
	if payload.Results != nil {
		encoded, _ := json.MarshalIndent(payload.Results, "", "  ")
		fmt.Fprintln(out, string(encoded))
	}
	if payload.ConfigPath != "" {
		fmt.Fprintf(out, "config: %s\n", payload.ConfigPath)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
