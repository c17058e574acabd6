package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/ashwch/pomichnyk/internal/contact"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/journal"
	"github.com/ashwch/pomichnyk/internal/logging"
	"github.com/ashwch/pomichnyk/internal/memory"
	"github.com/ashwch/pomichnyk/internal/note"
	"github.com/ashwch/pomichnyk/internal/router"
	"github.com/ashwch/pomichnyk/internal/storage"
	"github.com/ashwch/pomichnyk/internal/ui"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultDaysAhead = 7

type Options struct {
	Registry      *command.Registry
	Catalog       i18n.Catalog
	Store         *storage.Store
	Aliases       *memory.Store
	AliasPath     string
	Learn         bool
	MinConfidence float64
	Suggestions   int
	DaysAhead     int
	Backend       string
	Logger        *zap.Logger
	// JournalPath enables the activity journal when set.
	JournalPath string
	// Prompter overrides the console Run and Execute build over their input.
	Prompter Prompter
	Now      func() time.Time
}

// Reply is the outcome of one utterance.
type Reply struct {
	Text     string
	Decision router.Decision
	Exit     bool
	rejected bool
}

type handler func(s *Session, d router.Decision) (string, error)

// Session owns the books for one interactive run. It is not safe for
// concurrent use.
type Session struct {
	router    *router.Router
	handlers  *router.Table[handler]
	catalog   i18n.Catalog
	store     *storage.Store
	contacts  *contact.Book
	notes     *note.Notebook
	aliases   *memory.Store
	aliasPath string
	learn     bool
	daysAhead int
	backend   string
	log       *zap.Logger
	journal   string
	prompter  Prompter
	fixed     bool
	now       func() time.Time
}

var allHandlers = map[command.ID]handler{
	command.AddContact:    (*Session).addContact,
	command.SearchContact: (*Session).searchContact,
	command.ShowContacts:  (*Session).showContacts,
	command.EditContact:   (*Session).editContact,
	command.DeleteContact: (*Session).deleteContact,
	command.AddNote:       (*Session).addNote,
	command.SearchNotes:   (*Session).searchNotes,
	command.ShowNotes:     (*Session).showNotes,
	command.EditNote:      (*Session).editNote,
	command.DeleteNote:    (*Session).deleteNote,
	command.Birthdays:     (*Session).birthdays,
	command.Help:          (*Session).help,
	command.Exit:          (*Session).exit,
}

// New loads both books from opts.Store (a nil store keeps them in memory)
// and binds a handler to every command in the registry.
func New(opts Options) (*Session, error) {
	registry := opts.Registry
	if registry == nil {
		registry = command.Default()
	}

	handlers := make(map[command.ID]handler, registry.Len())
	for _, id := range registry.IDs() {
		if h, ok := allHandlers[id]; ok {
			handlers[id] = h
		}
	}
	table, err := router.NewTable(registry, handlers)
	if err != nil {
		return nil, fmt.Errorf("could not build command table: %w", err)
	}

	routerOpts := router.Options{MinConfidence: opts.MinConfidence, Suggestions: opts.Suggestions}
	if opts.Aliases != nil {
		routerOpts.Aliases = opts.Aliases
	}

	s := &Session{
		router:    router.New(registry, routerOpts),
		handlers:  table,
		catalog:   opts.Catalog,
		store:     opts.Store,
		contacts:  contact.NewBook(),
		notes:     note.NewNotebook(),
		aliases:   opts.Aliases,
		aliasPath: opts.AliasPath,
		learn:     opts.Learn,
		daysAhead: opts.DaysAhead,
		backend:   ui.NormalizeBackend(opts.Backend),
		log:       opts.Logger,
		journal:   opts.JournalPath,
		prompter:  opts.Prompter,
		fixed:     opts.Prompter != nil,
		now:       opts.Now,
	}
	if s.catalog.Messages == nil {
		s.catalog = i18n.LoadCatalog(i18n.DefaultLocale)
	}
	if s.daysAhead <= 0 {
		s.daysAhead = defaultDaysAhead
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if s.store != nil {
		book, report, err := s.store.LoadContacts()
		if err != nil {
			return nil, fmt.Errorf("could not load contacts: %w", err)
		}
		s.logLoad("contacts", report)
		notes, report, err := s.store.LoadNotes()
		if err != nil {
			return nil, fmt.Errorf("could not load notes: %w", err)
		}
		s.logLoad("notes", report)
		s.contacts = book
		s.notes = notes
	}
	return s, nil
}

func (s *Session) logLoad(what string, report storage.LoadReport) {
	fields := []zap.Field{zap.String("book", what), zap.Int("loaded", report.Loaded), zap.Int("skipped", report.Skipped)}
	if report.Skipped > 0 {
		s.log.Warn("skipped invalid records", fields...)
		return
	}
	s.log.Debug("loaded", fields...)
}

func (s *Session) Contacts() *contact.Book {
	return s.contacts
}

func (s *Session) Notes() *note.Notebook {
	return s.notes
}

func (s *Session) Router() *router.Router {
	return s.router
}

// Process routes one utterance and runs its handler. Validation problems
// come back as reply text; only prompt I/O failures are returned as errors.
func (s *Session) Process(input string) (Reply, error) {
	if command.Normalize(input) == "" {
		return Reply{}, nil
	}
	decision := s.router.Route(input)
	s.log.Debug("routed",
		logging.Utterance(input),
		zap.String("command", decision.ID.String()),
		zap.Float64("confidence", decision.Confidence),
		zap.String("source", string(decision.Source)),
		zap.Bool("accepted", decision.Accepted),
	)

	if !decision.Accepted {
		picked, err := s.pickSuggestion(decision)
		if err != nil {
			return Reply{Decision: decision}, err
		}
		if picked == command.None {
			s.record(input, decision, journal.OutcomeUnresolved)
			return Reply{Text: s.notUnderstood(decision), Decision: decision}, nil
		}
		s.remember(input, picked)
		decision.ID = picked
		decision.Accepted = true
	} else if decision.Source == router.SourceMemory && s.learn && s.aliases != nil {
		if err := s.aliases.Reinforce(input, decision.ID); err != nil {
			s.log.Debug("could not reinforce alias", zap.Error(err))
		}
	}
	reply, err := s.dispatch(decision)
	if err == nil {
		outcome := journal.OutcomeOK
		if reply.rejected {
			outcome = journal.OutcomeRejected
		}
		s.record(input, reply.Decision, outcome)
	}
	return reply, err
}

func (s *Session) record(input string, decision router.Decision, outcome string) {
	if s.journal == "" {
		return
	}
	err := journal.Record(s.journal, journal.Entry{
		Utterance:  input,
		Command:    decision.ID,
		Source:     string(decision.Source),
		Confidence: decision.Confidence,
		Outcome:    outcome,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.log.Debug("could not write journal", zap.Error(err))
	}
}

func (s *Session) dispatch(decision router.Decision) (Reply, error) {
	reply := Reply{Decision: decision, Exit: decision.ID == command.Exit}
	h, ok := s.handlers.Handler(decision.ID)
	if !ok {
		reply.Text = s.catalog.T(i18n.NotUnderstood)
		return reply, nil
	}
	text, err := h(s, decision)
	if err != nil {
		if isInputEnd(err) {
			return reply, err
		}
		s.log.Info("command rejected input", zap.String("command", decision.ID.String()), zap.Error(err))
		text = s.errorText(err)
		reply.rejected = true
	}
	reply.Text = text
	return reply, nil
}

func (s *Session) pickSuggestion(decision router.Decision) (command.ID, error) {
	if s.prompter == nil || len(decision.Suggestions) == 0 {
		return command.None, nil
	}
	choices := ui.BuildChoices(decision.Suggestions, s.describe)
	picked, used, err := s.prompter.Pick(s.catalog.T(i18n.PickCommand), choices)
	if err != nil {
		if isInputEnd(err) {
			return command.None, err
		}
		s.log.Warn("picker failed", zap.Error(err))
		return command.None, nil
	}
	if !used {
		return command.None, nil
	}
	return picked, nil
}

func (s *Session) remember(input string, id command.ID) {
	if !s.learn || s.aliases == nil {
		return
	}
	if err := s.aliases.Remember(input, id); err != nil {
		s.log.Debug("could not learn alias", zap.Error(err))
		return
	}
	s.log.Info("learned alias", logging.Utterance(input), zap.String("command", id.String()))
}

func (s *Session) rejectAlias(d router.Decision) {
	if d.Source != router.SourceMemory || !s.learn || s.aliases == nil {
		return
	}
	if err := s.aliases.Reject(d.Utterance, d.ID); err != nil {
		s.log.Debug("could not reject alias", zap.Error(err))
	}
}

func (s *Session) notUnderstood(decision router.Decision) string {
	text := s.catalog.T(i18n.NotUnderstood)
	if len(decision.Suggestions) == 0 {
		return text
	}
	names := make([]string, 0, len(decision.Suggestions))
	for _, match := range decision.Suggestions {
		names = append(names, s.describe(match.ID))
	}
	return text + "\n" + s.catalog.T(i18n.DidYouMean, strings.Join(names, ", "))
}

func (s *Session) describe(id command.ID) string {
	def, ok := s.router.Registry().Lookup(id)
	if !ok {
		return id.String()
	}
	if phrases := def.Patterns[s.catalog.Language()]; len(phrases) > 0 {
		return phrases[0]
	}
	for _, lang := range s.router.Registry().Languages() {
		if phrases := def.Patterns[lang]; len(phrases) > 0 {
			return phrases[0]
		}
	}
	return id.String()
}

// Save writes both books and the alias store. Every target is attempted even
// when an earlier one fails.
func (s *Session) Save() error {
	var err error
	if s.store != nil {
		err = multierr.Append(err, s.store.SaveContacts(s.contacts))
		err = multierr.Append(err, s.store.SaveNotes(s.notes))
	}
	if s.aliases != nil && s.aliasPath != "" {
		err = multierr.Append(err, memory.Save(s.aliasPath, *s.aliases))
	}
	return err
}

// Run is the read loop. It saves on exit, end of input and cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	console := s.bind(ctx, in, out)
	defer console.Close()
	fmt.Fprintln(out, ui.Banner(s.catalog.T(i18n.Welcome), s.catalog.T(i18n.WelcomeHint)))

	var loopErr error
	said := false
	for {
		line, err := console.ReadLine(s.catalog.T(i18n.Prompt))
		if err != nil {
			loopErr = err
			break
		}
		reply, err := s.Process(line)
		if reply.Text != "" {
			fmt.Fprintln(out, reply.Text)
		}
		if err != nil {
			loopErr = err
			break
		}
		if reply.Exit {
			said = true
			break
		}
	}
	if !said {
		fmt.Fprintln(out)
		fmt.Fprintln(out, s.catalog.T(i18n.Goodbye))
	}
	return s.finish(out, loopErr)
}

// Execute processes a single utterance, answering follow-up prompts from in,
// then saves.
func (s *Session) Execute(ctx context.Context, input string, in io.Reader, out io.Writer) error {
	console := s.bind(ctx, in, out)
	defer console.Close()
	reply, err := s.Process(input)
	if reply.Text != "" {
		fmt.Fprintln(out, reply.Text)
	}
	return s.finish(out, err)
}

func (s *Session) bind(ctx context.Context, in io.Reader, out io.Writer) *Console {
	console := NewConsole(ctx, in, out, s.backend, s.catalog)
	if !s.fixed {
		s.prompter = console
	}
	return console
}

func (s *Session) finish(out io.Writer, loopErr error) error {
	if isInputEnd(loopErr) {
		loopErr = nil
	}
	if err := s.Save(); err != nil {
		fmt.Fprintln(out, s.catalog.T(i18n.ErrSave, err))
		s.log.Error("save failed", zap.Error(err))
		return multierr.Append(loopErr, err)
	}
	return loopErr
}

func isInputEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Session) errorText(err error) string {
	switch {
	case errors.Is(err, contact.ErrInvalidName):
		return s.catalog.T(i18n.ErrName)
	case errors.Is(err, contact.ErrInvalidPhone):
		return s.catalog.T(i18n.ErrPhone)
	case errors.Is(err, contact.ErrInvalidEmail):
		return s.catalog.T(i18n.ErrEmail)
	case errors.Is(err, contact.ErrInvalidBirthday):
		return s.catalog.T(i18n.ErrBirthday)
	case errors.Is(err, contact.ErrInvalidDayMonth):
		return s.catalog.T(i18n.ErrDayMonth)
	case errors.Is(err, contact.ErrInvalidAddress):
		return s.catalog.T(i18n.ErrAddress)
	case errors.Is(err, contact.ErrDuplicateEmail):
		return s.catalog.T(i18n.ErrDupEmail)
	case errors.Is(err, contact.ErrDuplicatePhone):
		return s.catalog.T(i18n.ErrDupPhone)
	case errors.Is(err, contact.ErrPhoneNotFound):
		return s.catalog.T(i18n.ErrNoPhone)
	case errors.Is(err, note.ErrInvalidTitle):
		return s.catalog.T(i18n.ErrTitle)
	case errors.Is(err, note.ErrInvalidTag):
		return s.catalog.T(i18n.ErrTag)
	case errors.Is(err, note.ErrNoteNotFound):
		return s.catalog.T(i18n.NoteNotFound)
	default:
		return s.catalog.T(i18n.CommandFailed, err)
	}
}
