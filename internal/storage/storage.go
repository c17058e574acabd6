package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashwch/pomichnyk/internal/appdirs"
	"github.com/ashwch/pomichnyk/internal/contact"
	"github.com/ashwch/pomichnyk/internal/note"
	"github.com/google/uuid"
)

const (
	ContactsFile = "contacts.json"
	NotesFile    = "notes.json"

	formatVersion = 1
)

// LoadReport counts what a load kept and what it had to drop.
type LoadReport struct {
	Loaded  int
	Skipped int
}

type contactRecord struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones,omitempty"`
	Emails   []string `json:"emails,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
	Address  string   `json:"address,omitempty"`
}

type contactsFile struct {
	Version  int             `json:"version"`
	Contacts []contactRecord `json:"contacts"`
}

type noteRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type notesFile struct {
	Version int          `json:"version"`
	Notes   []noteRecord `json:"notes"`
}

// Store reads and writes the contact and note books in one directory.
type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ContactsPath() string {
	return filepath.Join(s.dir, ContactsFile)
}

func (s *Store) NotesPath() string {
	return filepath.Join(s.dir, NotesFile)
}

// LoadContacts reads contacts.json. A missing file is an empty book; records
// that no longer validate are skipped and counted.
func (s *Store) LoadContacts() (*contact.Book, LoadReport, error) {
	var file contactsFile
	found, err := readJSON(s.ContactsPath(), &file)
	if err != nil || !found {
		return contact.NewBook(), LoadReport{}, err
	}

	book := contact.NewBook()
	report := LoadReport{}
	now := s.now()
	for _, record := range file.Contacts {
		c, err := record.toContact(now)
		if err != nil {
			report.Skipped++
			continue
		}
		book.Add(c)
		report.Loaded++
	}
	return book, report, nil
}

func (s *Store) SaveContacts(book *contact.Book) error {
	file := contactsFile{Version: formatVersion, Contacts: make([]contactRecord, 0, book.Len())}
	for _, c := range book.Contacts() {
		file.Contacts = append(file.Contacts, contactToRecord(c))
	}
	return s.writeJSON(s.ContactsPath(), ".pomichnyk-contacts-*.json", file)
}

// LoadNotes reads notes.json with the same skipping rules as LoadContacts.
// A record without an id gets a fresh one.
func (s *Store) LoadNotes() (*note.Notebook, LoadReport, error) {
	var file notesFile
	found, err := readJSON(s.NotesPath(), &file)
	if err != nil || !found {
		return note.NewNotebook(), LoadReport{}, err
	}

	notes := make([]*note.Note, 0, len(file.Notes))
	report := LoadReport{}
	now := s.now()
	for _, record := range file.Notes {
		n, err := record.toNote(now)
		if err != nil {
			report.Skipped++
			continue
		}
		notes = append(notes, n)
		report.Loaded++
	}
	return note.NewNotebook(notes...), report, nil
}

func (s *Store) SaveNotes(book *note.Notebook) error {
	file := notesFile{Version: formatVersion, Notes: make([]noteRecord, 0, book.Len())}
	for _, n := range book.Notes() {
		file.Notes = append(file.Notes, noteToRecord(n))
	}
	return s.writeJSON(s.NotesPath(), ".pomichnyk-notes-*.json", file)
}

func (r contactRecord) toContact(now time.Time) (*contact.Contact, error) {
	c, err := contact.New(r.Name)
	if err != nil {
		return nil, err
	}
	for _, phone := range r.Phones {
		if err := c.AddPhone(phone); err != nil {
			return nil, err
		}
	}
	for _, email := range r.Emails {
		if err := c.AddEmail(email); err != nil {
			return nil, err
		}
	}
	if r.Birthday != "" {
		if err := c.SetBirthday(r.Birthday, now); err != nil {
			return nil, err
		}
	}
	if r.Address != "" {
		if err := c.SetAddress(r.Address); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func contactToRecord(c *contact.Contact) contactRecord {
	record := contactRecord{
		Name:    c.Name,
		Phones:  append([]string(nil), c.Phones...),
		Emails:  append([]string(nil), c.Emails...),
		Address: c.Address,
	}
	if c.HasBirthday() {
		record.Birthday = c.Birthday.Format(contact.BirthdayLayout)
	}
	return record
}

func (r noteRecord) toNote(now time.Time) (*note.Note, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}
	n, err := note.New(r.Title, r.Content, r.Tags, created)
	if err != nil {
		return nil, err
	}
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("could not parse note id: %w", err)
		}
		n.ID = id
	}
	if !r.UpdatedAt.IsZero() {
		n.UpdatedAt = r.UpdatedAt
	}
	return n, nil
}

func noteToRecord(n *note.Note) noteRecord {
	return noteRecord{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      append([]string(nil), n.Tags...),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func readJSON(path string, out any) (bool, error) {
	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(bytes, out); err != nil {
		return false, fmt.Errorf("could not parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func (s *Store) writeJSON(path, pattern string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", filepath.Base(path), err)
	}
	if err := appdirs.EnsureDir(s.dir); err != nil {
		return err
	}
	tempFile, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return fmt.Errorf("could not create temp data file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}
	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp data file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp data file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp data file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure %s: %w", filepath.Base(path), err)
	}
	return nil
}
