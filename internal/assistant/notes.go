package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/note"
	"github.com/ashwch/pomichnyk/internal/router"
)

const notePreviewWidth = 60

func (s *Session) addNote(_ router.Decision) (string, error) {
	title, err := s.ask(i18n.AskNoteTitle)
	if err != nil {
		return "", err
	}
	if title == "" {
		return s.catalog.T(i18n.TitleRequired), nil
	}
	content, err := s.ask(i18n.AskNoteContent)
	if err != nil {
		return "", err
	}
	tags, err := s.ask(i18n.AskNoteTags)
	if err != nil {
		return "", err
	}
	_, created, err := s.notes.Create(title, content, note.ParseTags(tags), s.now())
	if err != nil {
		return "", err
	}
	return s.catalog.T(i18n.NoteCreated, created.Title), nil
}

func (s *Session) searchNotes(_ router.Decision) (string, error) {
	query, err := s.ask(i18n.AskNoteSearch)
	if err != nil {
		return "", err
	}
	if query == "" {
		return s.catalog.T(i18n.QueryRequired), nil
	}
	found := s.notes.Search(query)
	if len(found) == 0 {
		return s.catalog.T(i18n.NotesNoMatch), nil
	}
	return s.noteList(s.catalog.T(i18n.NotesFound, len(found)), found), nil
}

func (s *Session) showNotes(_ router.Decision) (string, error) {
	all := s.notes.All()
	if len(all) == 0 {
		return s.catalog.T(i18n.NotesEmpty), nil
	}
	return s.noteList(s.catalog.T(i18n.NotesTotal, len(all)), all), nil
}

func (s *Session) editNote(_ router.Decision) (string, error) {
	index, current, text, err := s.askNote(i18n.AskEditNote)
	if err != nil || current == nil {
		return text, err
	}

	var changes note.Changes
	title, err := s.ask(i18n.AskNewTitle)
	if err != nil {
		return "", err
	}
	if title != "" && title != current.Title {
		changes.Title = &title
	}
	content, err := s.ask(i18n.AskNewContent)
	if err != nil {
		return "", err
	}
	if content != "" && content != current.Content {
		changes.Content = &content
	}
	tags, err := s.ask(i18n.AskNewTags)
	if err != nil {
		return "", err
	}
	if tags != "" {
		changes.Tags = note.ParseTags(tags)
		changes.SetTags = true
	}

	if changes.Empty() {
		return s.catalog.T(i18n.NoteUnchanged), nil
	}
	if _, err := s.notes.Edit(index, changes, s.now()); err != nil {
		return "", err
	}
	return s.catalog.T(i18n.NoteUpdated), nil
}

func (s *Session) deleteNote(d router.Decision) (string, error) {
	index, current, text, err := s.askNote(i18n.AskDeleteNote)
	if err != nil || current == nil {
		return text, err
	}
	approved, err := s.confirm(s.catalog.T(i18n.ConfirmNote, current.Title))
	if err != nil {
		return "", err
	}
	if !approved {
		s.rejectAlias(d)
		return s.catalog.T(i18n.Cancelled), nil
	}
	removed, ok := s.notes.Remove(index)
	if !ok {
		return s.catalog.T(i18n.NoteNotFound), nil
	}
	return s.catalog.T(i18n.NoteDeleted, removed.Title), nil
}

func (s *Session) askNote(key string) (int, *note.Note, string, error) {
	answer, err := s.ask(key)
	if err != nil {
		return 0, nil, "", err
	}
	if answer == "" {
		return 0, nil, s.catalog.T(i18n.NoteNumberMissing), nil
	}
	index, err := strconv.Atoi(strings.TrimPrefix(answer, "#"))
	if err != nil {
		return 0, nil, s.catalog.T(i18n.NoteNumberInvalid), nil
	}
	current, ok := s.notes.Get(index)
	if !ok {
		return 0, nil, s.catalog.T(i18n.NoteNotFound), nil
	}
	return index, current, "", nil
}

func (s *Session) noteList(header string, notes []note.Indexed) string {
	lines := make([]string, 0, len(notes)+1)
	lines = append(lines, header)
	for _, item := range notes {
		lines = append(lines, fmt.Sprintf("%d. %s", item.Index, s.formatNote(item.Note)))
	}
	return strings.Join(lines, "\n")
}

func (s *Session) formatNote(n *note.Note) string {
	parts := []string{n.Title}
	if preview := n.Preview(notePreviewWidth); preview != "" {
		parts = append(parts, preview)
	}
	if tags := n.SortedTags(); len(tags) > 0 {
		parts = append(parts, s.catalog.T(i18n.FieldTags)+": #"+strings.Join(tags, " #"))
	}
	parts = append(parts, s.catalog.T(i18n.FieldCreated)+": "+n.CreatedAt.Format("02.01.2006 15:04"))
	return strings.Join(parts, " | ")
}
