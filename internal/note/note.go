package note

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/cases"
)

var (
	ErrInvalidTitle = errors.New("note title must be 1 to 100 characters")
	ErrInvalidTag   = errors.New("tag may contain only letters, digits, hyphens and underscores, up to 30 characters")
)

const (
	maxTitleRunes = 100
	maxTagRunes   = 30
)

// Note is a titled free-text record with tags.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(title, content string, tags []string, now time.Time) (*Note, error) {
	validTitle, err := Title(title)
	if err != nil {
		return nil, err
	}
	n := &Note{
		ID:        uuid.New(),
		Title:     validTitle,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.SetTags(tags, now); err != nil {
		return nil, err
	}
	return n, nil
}

func Title(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" || utf8.RuneCountInString(value) > maxTitleRunes {
		return "", ErrInvalidTitle
	}
	return value, nil
}

func Tag(raw string) (string, error) {
	value := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if value == "" || utf8.RuneCountInString(value) > maxTagRunes {
		return "", ErrInvalidTag
	}
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			continue
		}
		return "", ErrInvalidTag
	}
	return value, nil
}

func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (n *Note) SetTitle(raw string, now time.Time) error {
	title, err := Title(raw)
	if err != nil {
		return err
	}
	n.Title = title
	n.UpdatedAt = now
	return nil
}

func (n *Note) SetContent(content string, now time.Time) {
	n.Content = strings.TrimSpace(content)
	n.UpdatedAt = now
}

// SetTags replaces all tags. Nothing changes when any tag is invalid.
func (n *Note) SetTags(tags []string, now time.Time) error {
	next := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag, err := Tag(raw)
		if err != nil {
			return err
		}
		if !contains(next, tag) {
			next = append(next, tag)
		}
	}
	n.Tags = next
	n.UpdatedAt = now
	return nil
}

func (n *Note) AddTag(raw string, now time.Time) error {
	tag, err := Tag(raw)
	if err != nil {
		return err
	}
	if !contains(n.Tags, tag) {
		n.Tags = append(n.Tags, tag)
		n.UpdatedAt = now
	}
	return nil
}

func (n *Note) RemoveTag(raw string, now time.Time) bool {
	tag, err := Tag(raw)
	if err != nil {
		return false
	}
	for i, existing := range n.Tags {
		if existing == tag {
			n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
			n.UpdatedAt = now
			return true
		}
	}
	return false
}

func (n *Note) HasTag(raw string) bool {
	tag, err := Tag(raw)
	if err != nil {
		return false
	}
	return contains(n.Tags, tag)
}

func (n *Note) SortedTags() []string {
	out := append([]string(nil), n.Tags...)
	sort.Strings(out)
	return out
}

// Matches reports whether query occurs in the title, content or a tag,
// ignoring case. An empty query matches everything.
func (n *Note) Matches(query string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(fold(n.Title), q) || strings.Contains(fold(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(tag, q) {
			return true
		}
	}
	return false
}

const previewTail = "..."

// Preview cuts content to at most limit terminal columns, marking the cut
// with "...". Newlines are flattened so a preview stays on one line.
func (n *Note) Preview(limit int) string {
	content := strings.Join(strings.Fields(n.Content), " ")
	if limit <= 0 || runewidth.StringWidth(content) <= limit {
		return content
	}
	return truncate.StringWithTail(content, uint(limit+len(previewTail)), previewTail)
}

func (n *Note) WordCount() int {
	return len(strings.Fields(n.Content))
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
