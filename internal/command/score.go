package command

import (
	"strings"
	"unicode/utf8"
)

// containmentFloor is the lowest score a whole-phrase containment can get.
const containmentFloor = 0.6

// Score rates how well a normalized utterance matches def, in [0,1]. It is the
// maximum of exact phrase equality, whole-phrase containment in either
// direction, and weighted keyword overlap.
func Score(normalized string, def Definition) float64 {
	compiled, err := compile(def.clone())
	if err != nil {
		return 0
	}
	return compiled.score(normalized, Tokens(normalized))
}

func (e entry) score(utterance string, tokens []string) float64 {
	if utterance == "" {
		return 0
	}
	utteranceRunes := utf8.RuneCountInString(utterance)

	best := 0.0
	for i, phrase := range e.phrases {
		if phrase == utterance {
			return 1
		}
		if s := containmentScore(utterance, utteranceRunes, phrase, e.phraseRunes[i]); s > best {
			best = s
		}
	}
	if s := e.keywordScore(tokens); s > best {
		best = s
	}
	return clamp01(best)
}

func containmentScore(utterance string, utteranceRunes int, phrase string, phraseRunes int) float64 {
	var shorter, longer int
	switch {
	case utteranceRunes > phraseRunes && containsWhole(utterance, phrase):
		shorter, longer = phraseRunes, utteranceRunes
	case phraseRunes > utteranceRunes && containsWhole(phrase, utterance):
		shorter, longer = utteranceRunes, phraseRunes
	default:
		return 0
	}
	ratio := float64(shorter) / float64(longer)
	if ratio < containmentFloor {
		return containmentFloor
	}
	return ratio
}

func (e entry) keywordScore(tokens []string) float64 {
	if e.totalWeight <= 0 || len(tokens) == 0 {
		return 0
	}
	matched := 0.0
	seen := map[string]struct{}{}
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if weight, ok := e.keywords[token]; ok {
			matched += weight
		}
	}
	return matched / e.totalWeight
}

func containsWhole(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	start := 0
	for start <= len(haystack)-len(needle) {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		before, _ := utf8.DecodeLastRuneInString(haystack[:idx])
		after, _ := utf8.DecodeRuneInString(haystack[idx+len(needle):])
		beforeOK := idx == 0 || !isWordRune(before)
		afterOK := idx+len(needle) == len(haystack) || !isWordRune(after)
		if beforeOK && afterOK {
			return true
		}
		_, width := utf8.DecodeRuneInString(haystack[idx:])
		start = idx + width
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
