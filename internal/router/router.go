package router

import (
	"strings"

	"github.com/ashwch/pomichnyk/internal/command"
)

// Source says which stage produced a Decision.
type Source string

const (
	SourceNone    Source = "none"
	SourcePrefix  Source = "prefix"
	SourceMemory  Source = "memory"
	SourceMatcher Source = "matcher"
)

const (
	DefaultMinConfidence = 0.3
	DefaultSuggestions   = 3
)

// parameterPrefixes carry their argument after the command words.
var parameterPrefixes = []struct {
	words []string
	id    command.ID
}{
	{words: []string{"search", "contact"}, id: command.SearchContact},
	{words: []string{"find", "contact"}, id: command.SearchContact},
	{words: []string{"знайди", "контакт"}, id: command.SearchContact},
	{words: []string{"знайти", "контакт"}, id: command.SearchContact},
}

// AliasStore resolves utterances the user taught explicitly.
type AliasStore interface {
	Lookup(utterance string) (command.ID, bool)
}

type Options struct {
	// MinConfidence is exclusive: a match is accepted when its confidence is
	// strictly greater. Zero means DefaultMinConfidence.
	MinConfidence float64
	// Suggestions caps the "did you mean" list; negative disables it.
	Suggestions int
	Aliases     AliasStore
}

// Decision is the routing outcome for one utterance.
type Decision struct {
	Utterance   string          `json:"utterance"`
	ID          command.ID      `json:"command"`
	Confidence  float64         `json:"confidence"`
	Query       string          `json:"query,omitempty"`
	Accepted    bool            `json:"accepted"`
	Source      Source          `json:"source"`
	Suggestions []command.Match `json:"suggestions,omitempty"`
}

type Router struct {
	registry      *command.Registry
	minConfidence float64
	suggestions   int
	aliases       AliasStore
}

func New(registry *command.Registry, opts Options) *Router {
	if registry == nil {
		registry = command.Default()
	}
	r := &Router{
		registry:      registry,
		minConfidence: opts.MinConfidence,
		suggestions:   opts.Suggestions,
		aliases:       opts.Aliases,
	}
	if r.minConfidence <= 0 || r.minConfidence > 1 {
		r.minConfidence = DefaultMinConfidence
	}
	if r.suggestions == 0 {
		r.suggestions = DefaultSuggestions
	}
	return r
}

func (r *Router) Registry() *command.Registry {
	return r.registry
}

func (r *Router) MinConfidence() float64 {
	return r.minConfidence
}

// Route resolves utterance in three stages: parameter prefixes, learned
// aliases, then the registry matcher.
func (r *Router) Route(utterance string) Decision {
	decision := Decision{Utterance: utterance, ID: command.None, Source: SourceNone}
	if command.Normalize(utterance) == "" {
		return decision
	}

	if id, query, ok := stripPrefix(utterance); ok {
		decision.ID = id
		decision.Query = query
		decision.Confidence = 1
		decision.Accepted = true
		decision.Source = SourcePrefix
		return decision
	}

	if r.aliases != nil {
		if id, ok := r.aliases.Lookup(utterance); ok {
			if _, known := r.registry.Lookup(id); known {
				decision.ID = id
				decision.Confidence = 1
				decision.Accepted = true
				decision.Source = SourceMemory
				return decision
			}
		}
	}

	id, confidence := r.registry.FindBest(utterance)
	decision.ID = id
	decision.Confidence = confidence
	decision.Source = SourceMatcher
	decision.Accepted = id != command.None && confidence > r.minConfidence
	if !decision.Accepted && r.suggestions > 0 {
		decision.Suggestions = r.registry.Rank(utterance, r.suggestions)
	}
	return decision
}

func stripPrefix(utterance string) (command.ID, string, bool) {
	fields := strings.Fields(utterance)
	for _, prefix := range parameterPrefixes {
		if len(fields) <= len(prefix.words) {
			continue
		}
		matched := true
		for i, word := range prefix.words {
			if command.Normalize(fields[i]) != word {
				matched = false
				break
			}
		}
		if matched {
			return prefix.id, strings.Join(fields[len(prefix.words):], " "), true
		}
	}
	return command.None, "", false
}
