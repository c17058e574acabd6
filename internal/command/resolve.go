package command

import (
	"sort"
	"unicode/utf8"
)

// Match is one scored candidate for an utterance.
type Match struct {
	ID         ID      `json:"id"`
	Confidence float64 `json:"confidence"`
}

type candidate struct {
	match    Match
	distance int
	order    int
}

// FindBest resolves a raw utterance to the best matching command. It returns
// (None, 0) for empty or whitespace-only input and when no command scores
// above zero. The result depends only on the utterance and the registry.
func (r *Registry) FindBest(utterance string) (ID, float64) {
	ranked := r.rank(utterance)
	if len(ranked) == 0 {
		return None, 0
	}
	return ranked[0].match.ID, ranked[0].match.Confidence
}

// Rank returns up to limit candidates with a non-zero score, best first, using
// the same ordering as FindBest. A limit <= 0 returns every candidate.
func (r *Registry) Rank(utterance string, limit int) []Match {
	ranked := r.rank(utterance)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Match, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.match)
	}
	return out
}

func (r *Registry) rank(utterance string) []candidate {
	normalized := Normalize(utterance)
	if normalized == "" {
		return nil
	}
	tokens := Tokens(normalized)
	length := utf8.RuneCountInString(normalized)

	out := make([]candidate, 0, len(r.entries))
	for order, e := range r.entries {
		score := e.score(normalized, tokens)
		if score <= 0 {
			continue
		}
		out = append(out, candidate{
			match:    Match{ID: e.def.ID, Confidence: score},
			distance: e.closestPhraseDistance(length),
			order:    order,
		})
	}

	// Equal scores prefer the command whose phrasing is closest in length to
	// the utterance, so a short generic keyword set does not eclipse a more
	// specific multi-word command. Registration order settles the rest.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].match.Confidence != out[j].match.Confidence {
			return out[i].match.Confidence > out[j].match.Confidence
		}
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return out[i].order < out[j].order
	})
	return out
}

func (e entry) closestPhraseDistance(length int) int {
	best := -1
	for _, runes := range e.phraseRunes {
		d := runes - length
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
