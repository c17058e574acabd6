package note

import (
	"errors"
	"strings"
	"time"
)

var ErrNoteNotFound = errors.New("no note with that number")

// Indexed pairs a note with its 1-based position as shown to the user.
type Indexed struct {
	Index int
	Note  *Note
}

// Changes is a partial edit. Nil fields are left alone.
type Changes struct {
	Title   *string
	Content *string
	Tags    []string
	SetTags bool
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Content == nil && !c.SetTags
}

// Notebook keeps notes in creation order. Indexes are 1-based and shift
// down when an earlier note is removed.
type Notebook struct {
	notes []*Note
}

func NewNotebook(notes ...*Note) *Notebook {
	return &Notebook{notes: append([]*Note(nil), notes...)}
}

func (b *Notebook) Len() int {
	return len(b.notes)
}

func (b *Notebook) Create(title, content string, tags []string, now time.Time) (int, *Note, error) {
	n, err := New(title, content, tags, now)
	if err != nil {
		return 0, nil, err
	}
	b.notes = append(b.notes, n)
	return len(b.notes), n, nil
}

func (b *Notebook) Get(index int) (*Note, bool) {
	if index < 1 || index > len(b.notes) {
		return nil, false
	}
	return b.notes[index-1], true
}

// Edit applies changes atomically: an invalid title or tag leaves the note
// untouched.
func (b *Notebook) Edit(index int, changes Changes, now time.Time) (*Note, error) {
	current, ok := b.Get(index)
	if !ok {
		return nil, ErrNoteNotFound
	}
	next := *current
	next.Tags = append([]string(nil), current.Tags...)
	if changes.Title != nil {
		if err := next.SetTitle(*changes.Title, now); err != nil {
			return nil, err
		}
	}
	if changes.Content != nil {
		next.SetContent(*changes.Content, now)
	}
	if changes.SetTags {
		if err := next.SetTags(changes.Tags, now); err != nil {
			return nil, err
		}
	}
	*current = next
	return current, nil
}

func (b *Notebook) Remove(index int) (*Note, bool) {
	n, ok := b.Get(index)
	if !ok {
		return nil, false
	}
	b.notes = append(b.notes[:index-1], b.notes[index:]...)
	return n, true
}

// Search matches title, content and tags. A query starting with # is a tag
// lookup.
func (b *Notebook) Search(query string) []Indexed {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, "#") {
		return b.ByTag(query)
	}
	return b.filter(func(n *Note) bool { return n.Matches(query) })
}

func (b *Notebook) ByTag(tag string) []Indexed {
	return b.filter(func(n *Note) bool { return n.HasTag(tag) })
}

func (b *Notebook) All() []Indexed {
	return b.filter(func(*Note) bool { return true })
}

func (b *Notebook) Notes() []*Note {
	return append([]*Note(nil), b.notes...)
}

func (b *Notebook) filter(keep func(*Note) bool) []Indexed {
	out := make([]Indexed, 0)
	for i, n := range b.notes {
		if keep(n) {
			out = append(out, Indexed{Index: i + 1, Note: n})
		}
	}
	return out
}
