package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyRegistry = errors.New("command registry is empty")
	ErrDuplicateID   = errors.New("duplicate command id")
	ErrInvalidEntry  = errors.New("invalid command definition")
)

// Definition describes one command: its phrase variants per language tag,
// weighted trigger words, and help metadata.
type Definition struct {
	ID           ID
	Description  string
	Translations map[string]string
	Patterns     map[string][]string
	Keywords     map[string]float64
	Examples     []string
}

func (d Definition) clone() Definition {
	out := Definition{
		ID:          d.ID,
		Description: d.Description,
		Examples:    append([]string(nil), d.Examples...),
	}
	if d.Translations != nil {
		out.Translations = make(map[string]string, len(d.Translations))
		for lang, text := range d.Translations {
			out.Translations[lang] = text
		}
	}
	if d.Patterns != nil {
		out.Patterns = make(map[string][]string, len(d.Patterns))
		for lang, phrases := range d.Patterns {
			out.Patterns[lang] = append([]string(nil), phrases...)
		}
	}
	if d.Keywords != nil {
		out.Keywords = make(map[string]float64, len(d.Keywords))
		for word, weight := range d.Keywords {
			out.Keywords[word] = weight
		}
	}
	return out
}

// entry is the frozen, pre-normalized form of a Definition used for scoring.
type entry struct {
	def         Definition
	phrases     []string
	phraseRunes []int
	keywords    map[string]float64
	totalWeight float64
}

// Registry is the immutable command catalog. It is safe for concurrent use
// because nothing mutates it after NewRegistry returns.
type Registry struct {
	entries   []entry
	index     map[ID]int
	languages []string
}

// NewRegistry validates defs and freezes them in the given order. Registration
// order is the final tie-break when two commands score the same.
func NewRegistry(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyRegistry
	}

	reg := &Registry{
		entries: make([]entry, 0, len(defs)),
		index:   make(map[ID]int, len(defs)),
	}
	languages := map[string]struct{}{}

	for _, def := range defs {
		if !def.ID.Known() {
			return nil, fmt.Errorf("%w: unknown id %q", ErrInvalidEntry, def.ID)
		}
		if _, exists := reg.index[def.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, def.ID)
		}
		compiled, err := compile(def.clone())
		if err != nil {
			return nil, err
		}
		for lang := range def.Patterns {
			languages[lang] = struct{}{}
		}
		reg.index[def.ID] = len(reg.entries)
		reg.entries = append(reg.entries, compiled)
	}
	reg.languages = sortedKeys(languages)
	return reg, nil
}

func compile(def Definition) (entry, error) {
	def.Description = strings.TrimSpace(def.Description)
	if def.Description == "" {
		return entry{}, fmt.Errorf("%w: %s has no description", ErrInvalidEntry, def.ID)
	}
	examples := make([]string, 0, len(def.Examples))
	for _, example := range def.Examples {
		if trimmed := strings.TrimSpace(example); trimmed != "" {
			examples = append(examples, trimmed)
		}
	}
	if len(examples) == 0 {
		return entry{}, fmt.Errorf("%w: %s has no examples", ErrInvalidEntry, def.ID)
	}
	def.Examples = examples

	compiled := entry{keywords: map[string]float64{}}
	seen := map[string]struct{}{}
	for _, lang := range sortedKeys(def.Patterns) {
		for _, phrase := range def.Patterns[lang] {
			normalized := Normalize(phrase)
			if normalized == "" {
				continue
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			compiled.phrases = append(compiled.phrases, normalized)
			compiled.phraseRunes = append(compiled.phraseRunes, utf8.RuneCountInString(normalized))
		}
	}
	if len(compiled.phrases) == 0 {
		return entry{}, fmt.Errorf("%w: %s has no phrases", ErrInvalidEntry, def.ID)
	}

	for _, word := range sortedKeys(def.Keywords) {
		weight := def.Keywords[word]
		if weight <= 0 || weight > 1 {
			return entry{}, fmt.Errorf("%w: %s keyword %q weight %v is outside (0,1]", ErrInvalidEntry, def.ID, word, weight)
		}
		normalized := Normalize(word)
		if normalized == "" {
			continue
		}
		if _, exists := compiled.keywords[normalized]; exists {
			continue
		}
		compiled.keywords[normalized] = weight
		compiled.totalWeight += weight
	}

	compiled.def = def
	return compiled, nil
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) IDs() []ID {
	out := make([]ID, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.def.ID)
	}
	return out
}

func (r *Registry) Languages() []string {
	return append([]string(nil), r.languages...)
}

func (r *Registry) Lookup(id ID) (Definition, bool) {
	pos, ok := r.index[id]
	if !ok {
		return Definition{}, false
	}
	return r.entries[pos].def.clone(), true
}

func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.def.clone())
	}
	return out
}

// Description returns the registered description of id. The boolean is false
// when id is not registered; the string is then empty and callers substitute
// their own default.
func (r *Registry) Description(id ID) (string, bool) {
	pos, ok := r.index[id]
	if !ok {
		return "", false
	}
	return r.entries[pos].def.Description, true
}

func (r *Registry) LocalizedDescription(id ID, lang string) (string, bool) {
	pos, ok := r.index[id]
	if !ok {
		return "", false
	}
	def := r.entries[pos].def
	if text := strings.TrimSpace(def.Translations[lang]); text != "" {
		return text, true
	}
	return def.Description, true
}

func (r *Registry) Examples(id ID) []string {
	pos, ok := r.index[id]
	if !ok {
		return nil
	}
	return append([]string(nil), r.entries[pos].def.Examples...)
}
