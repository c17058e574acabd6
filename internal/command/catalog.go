package command

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Commands []catalogEntry `yaml:"commands"`
}

type catalogEntry struct {
	ID           string              `yaml:"id"`
	Description  string              `yaml:"description"`
	Translations map[string]string   `yaml:"translations"`
	Patterns     map[string][]string `yaml:"patterns"`
	Keywords     map[string]float64  `yaml:"keywords"`
	Examples     []string            `yaml:"examples"`
}

var defaultRegistry = mustLoadEmbedded()

func Default() *Registry {
	return defaultRegistry
}

func mustLoadEmbedded() *Registry {
	defs, err := ParseCatalog(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("command: embedded catalog is invalid: %v", err))
	}
	reg, err := NewRegistry(defs)
	if err != nil {
		panic(fmt.Sprintf("command: embedded catalog is invalid: %v", err))
	}
	return reg
}

func EmbeddedDefinitions() []Definition {
	defs, err := ParseCatalog(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("command: embedded catalog is invalid: %v", err))
	}
	return defs
}

// ParseCatalog decodes a YAML command catalog. Unknown fields are rejected so a
// typo in a phrase file surfaces as an error instead of a silently empty entry.
func ParseCatalog(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not parse command catalog: %w", err)
	}

	defs := make([]Definition, 0, len(file.Commands))
	for _, entry := range file.Commands {
		defs = append(defs, Definition{
			ID:           ID(strings.TrimSpace(entry.ID)),
			Description:  strings.TrimSpace(entry.Description),
			Translations: entry.Translations,
			Patterns:     entry.Patterns,
			Keywords:     entry.Keywords,
			Examples:     entry.Examples,
		})
	}
	return defs, nil
}

// Extend merges overlay definitions into base. Overlay entries may only refer to
// ids already present in base; they add phrases, keywords and examples and may
// replace descriptions. The result is meant to be passed to NewRegistry.
func Extend(base []Definition, overlay []Definition) ([]Definition, error) {
	merged := make([]Definition, len(base))
	index := make(map[ID]int, len(base))
	for i, def := range base {
		merged[i] = def.clone()
		index[def.ID] = i
	}

	for _, extra := range overlay {
		pos, ok := index[extra.ID]
		if !ok {
			return nil, fmt.Errorf("phrase overlay refers to unknown command %q", extra.ID)
		}
		target := merged[pos]
		if extra.Description != "" {
			target.Description = extra.Description
		}
		for lang, text := range extra.Translations {
			if target.Translations == nil {
				target.Translations = map[string]string{}
			}
			target.Translations[lang] = text
		}
		for lang, phrases := range extra.Patterns {
			if target.Patterns == nil {
				target.Patterns = map[string][]string{}
			}
			target.Patterns[lang] = mergeStringSlices(target.Patterns[lang], phrases)
		}
		for word, weight := range extra.Keywords {
			if target.Keywords == nil {
				target.Keywords = map[string]float64{}
			}
			target.Keywords[word] = weight
		}
		target.Examples = mergeStringSlices(target.Examples, extra.Examples)
		merged[pos] = target
	}
	return merged, nil
}

// LoadWithOverlay builds a registry from the embedded catalog extended by the
// phrase file at path. A missing file is not an error.
func LoadWithOverlay(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read phrase overlay: %w", err)
	}
	overlay, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	if len(overlay) == 0 {
		return Default(), nil
	}
	defs, err := Extend(EmbeddedDefinitions(), overlay)
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs)
}

func mergeStringSlices(base []string, extra []string) []string {
	seen := map[string]struct{}{}
	merged := make([]string, 0, len(base)+len(extra))
	appendUnique := func(items []string) {
		for _, item := range items {
			trimmed := strings.TrimSpace(item)
			if trimmed == "" {
				continue
			}
			key := Normalize(trimmed)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, trimmed)
		}
	}
	appendUnique(base)
	appendUnique(extra)
	return merged
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
