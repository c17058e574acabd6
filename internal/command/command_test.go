package command

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExamplesResolveToTheirOwnCommand(t *testing.T) {
	reg := Default()
	for _, id := range reg.IDs() {
		for _, example := range reg.Examples(id) {
			got, confidence := reg.FindBest(example)
			if got != id {
				t.Fatalf("example %q resolved to %s, want %s (confidence %.2f)", example, got, id, confidence)
			}
			if confidence < 0.6 {
				t.Fatalf("example %q resolved with confidence %.2f, want >= 0.6", example, confidence)
			}
		}
	}
}

func TestFindBestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		id, confidence := Default().FindBest(input)
		if id != None || confidence != 0 {
			t.Fatalf("FindBest(%q)=(%s, %.2f), want (none, 0)", input, id, confidence)
		}
	}
}

func TestFindBestIsCaseInsensitive(t *testing.T) {
	reg := Default()
	upperID, upperConf := reg.FindBest("ADD CONTACT")
	lowerID, lowerConf := reg.FindBest("add contact")
	if upperID != lowerID || upperConf != lowerConf {
		t.Fatalf("case changed the result: (%s, %.2f) vs (%s, %.2f)", upperID, upperConf, lowerID, lowerConf)
	}
	cyrID, _ := reg.FindBest("ДОДАЙ КОНТАКТ")
	if cyrID != AddContact {
		t.Fatalf("expected Cyrillic upper case to resolve to add_contact, got %s", cyrID)
	}
}

func TestFindBestExactMatchCeiling(t *testing.T) {
	id, confidence := Default().FindBest("add contact")
	if id != AddContact || confidence != 1.0 {
		t.Fatalf("got (%s, %.2f), want (add_contact, 1.0)", id, confidence)
	}
}

func TestFindBestCrossLanguage(t *testing.T) {
	reg := Default()
	for _, input := range []string{"додай контакт", "add contact"} {
		id, confidence := reg.FindBest(input)
		if id != AddContact {
			t.Fatalf("%q resolved to %s, want add_contact", input, id)
		}
		if confidence <= 0.8 {
			t.Fatalf("%q confidence %.2f, want > 0.8", input, confidence)
		}
	}
}

func TestFindBestKnownPhrasings(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{in: "додай нотатку", want: AddNote},
		{in: "знайди контакт", want: SearchContact},
		{in: "новий контакт", want: AddContact},
		{in: "створити контакт", want: AddContact},
		{in: "show contacts", want: ShowContacts},
		{in: "показати контакти", want: ShowContacts},
		{in: "  Show   Notes ", want: ShowNotes},
		{in: "help me add contact", want: AddContact},
		{in: "?", want: Help},
	}
	for _, tc := range cases {
		if got, _ := Default().FindBest(tc.in); got != tc.want {
			t.Fatalf("FindBest(%q)=%s want=%s", tc.in, got, tc.want)
		}
	}
}

func TestFindBestPartialWordScoresAboveThreshold(t *testing.T) {
	id, confidence := Default().FindBest("додати")
	if id == None {
		t.Fatalf("expected a command for a partial phrase")
	}
	if confidence <= 0.3 {
		t.Fatalf("expected confidence > 0.3, got %.2f", confidence)
	}
}

func TestFindBestNoiseHasLowConfidence(t *testing.T) {
	for _, input := range []string{"абсолютно невідома команда xyz", "абсолютно невідома команда", "qwerty zxcv"} {
		id, confidence := Default().FindBest(input)
		if id != None && confidence >= 0.3 {
			t.Fatalf("noise %q resolved to %s with confidence %.2f", input, id, confidence)
		}
	}
}

func TestFindBestIsDeterministicAcrossGoroutines(t *testing.T) {
	reg := Default()
	inputs := []string{"додати", "contact", "show all notes", "видалити", "note"}
	want := make([]Match, len(inputs))
	for i, input := range inputs {
		id, confidence := reg.FindBest(input)
		want[i] = Match{ID: id, Confidence: confidence}
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range inputs {
				id, confidence := reg.FindBest(input)
				if (Match{ID: id, Confidence: confidence}) != want[i] {
					errs <- input
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for input := range errs {
		t.Fatalf("non-deterministic result for %q", input)
	}
}

func TestTieBreakPrefersCloserPhraseLength(t *testing.T) {
	defs := []Definition{
		{
			ID:          Help,
			Description: "help",
			Patterns:    map[string][]string{"en": {"contact"}},
			Examples:    []string{"contact"},
		},
		{
			ID:          AddContact,
			Description: "add",
			Patterns:    map[string][]string{"en": {"contact card"}},
			Examples:    []string{"contact card"},
		},
	}
	reg, err := NewRegistry(defs)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	// Both phrases are contained in the utterance and floor at 0.6.
	id, confidence := reg.FindBest("please open contact card view for me now")
	if confidence != 0.6 {
		t.Fatalf("expected tied floor score 0.6, got %.2f", confidence)
	}
	if id != AddContact {
		t.Fatalf("expected the longer, closer phrase to win the tie, got %s", id)
	}
}

func TestTieBreakFallsBackToRegistrationOrder(t *testing.T) {
	defs := []Definition{
		{ID: ShowNotes, Description: "a", Patterns: map[string][]string{"en": {"list"}}, Examples: []string{"list"}},
		{ID: ShowContacts, Description: "b", Patterns: map[string][]string{"en": {"list"}}, Examples: []string{"list"}},
	}
	reg, err := NewRegistry(defs)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if id, _ := reg.FindBest("list"); id != ShowNotes {
		t.Fatalf("expected earlier registration to win, got %s", id)
	}
}

func TestRankOrdersCandidates(t *testing.T) {
	ranked := Default().Rank("contact", 3)
	if len(ranked) == 0 || len(ranked) > 3 {
		t.Fatalf("expected 1..3 candidates, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Confidence > ranked[i-1].Confidence {
			t.Fatalf("candidates not sorted: %+v", ranked)
		}
	}
	id, confidence := Default().FindBest("contact")
	if ranked[0] != (Match{ID: id, Confidence: confidence}) {
		t.Fatalf("Rank head %+v differs from FindBest (%s, %.2f)", ranked[0], id, confidence)
	}
}

func TestMetadataCompleteness(t *testing.T) {
	reg := Default()
	if reg.Len() != len(All()) {
		t.Fatalf("expected every known id registered, got %d of %d", reg.Len(), len(All()))
	}
	for _, id := range All() {
		description, ok := reg.Description(id)
		if !ok || description == "" {
			t.Fatalf("missing description for %s", id)
		}
		if len(reg.Examples(id)) == 0 {
			t.Fatalf("missing examples for %s", id)
		}
		english, ok := reg.LocalizedDescription(id, "en")
		if !ok || english == "" {
			t.Fatalf("missing english description for %s", id)
		}
	}
}

func TestMetadataUnknownID(t *testing.T) {
	reg := Default()
	if description, ok := reg.Description("teleport"); ok || description != "" {
		t.Fatalf("expected not-found for unknown id, got %q %v", description, ok)
	}
	if examples := reg.Examples("teleport"); len(examples) != 0 {
		t.Fatalf("expected no examples for unknown id, got %v", examples)
	}
}

func TestExamplesReturnsCopy(t *testing.T) {
	reg := Default()
	examples := reg.Examples(AddContact)
	examples[0] = "mutated"
	if reg.Examples(AddContact)[0] == "mutated" {
		t.Fatalf("registry examples were mutated through a returned slice")
	}
	def, _ := reg.Lookup(AddContact)
	def.Patterns["en"][0] = "mutated"
	again, _ := reg.Lookup(AddContact)
	if again.Patterns["en"][0] == "mutated" {
		t.Fatalf("registry patterns were mutated through Lookup")
	}
}

func TestNewRegistryRejectsBrokenCatalogs(t *testing.T) {
	valid := Definition{
		ID:          Help,
		Description: "help",
		Patterns:    map[string][]string{"en": {"help"}},
		Keywords:    map[string]float64{"help": 1},
		Examples:    []string{"help"},
	}

	if _, err := NewRegistry(nil); !errors.Is(err, ErrEmptyRegistry) {
		t.Fatalf("expected ErrEmptyRegistry, got %v", err)
	}
	if _, err := NewRegistry([]Definition{valid, valid}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	unknown := valid
	unknown.ID = "teleport"
	noExamples := valid
	noExamples.Examples = []string{" "}
	noPhrases := valid
	noPhrases.Patterns = map[string][]string{"en": {""}}
	badWeight := valid
	badWeight.Keywords = map[string]float64{"help": 1.5}
	noDescription := valid
	noDescription.Description = ""

	for name, def := range map[string]Definition{
		"unknown id":     unknown,
		"no examples":    noExamples,
		"no phrases":     noPhrases,
		"bad weight":     badWeight,
		"no description": noDescription,
	} {
		if _, err := NewRegistry([]Definition{def}); !errors.Is(err, ErrInvalidEntry) {
			t.Fatalf("%s: expected ErrInvalidEntry, got %v", name, err)
		}
	}
}

func TestScoreKeywordOverlap(t *testing.T) {
	def := Definition{
		ID:          AddNote,
		Description: "add note",
		Patterns:    map[string][]string{"en": {"add note"}},
		Keywords:    map[string]float64{"add": 1, "note": 0.5, "write": 0.5},
		Examples:    []string{"add note"},
	}
	got := Score(Normalize("please write it down"), def)
	if want := 0.25; got != want {
		t.Fatalf("keyword score=%v want=%v", got, want)
	}
	if got := Score(Normalize("add note"), def); got != 1 {
		t.Fatalf("exact score=%v want=1", got)
	}
	if got := Score("", def); got != 0 {
		t.Fatalf("empty score=%v want=0", got)
	}
}

func TestContainsWholeRespectsWordBoundaries(t *testing.T) {
	cases := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{haystack: "add notes", needle: "add note", want: false},
		{haystack: "please add note", needle: "add note", want: true},
		{haystack: "знайди контакт олена", needle: "знайди контакт", want: true},
		{haystack: "контакти", needle: "контакт", want: false},
		{haystack: "що?", needle: "?", want: false},
		{haystack: "add note, now", needle: "add note", want: true},
	}
	for _, tc := range cases {
		if got := containsWhole(tc.haystack, tc.needle); got != tc.want {
			t.Fatalf("containsWhole(%q, %q)=%v want=%v", tc.haystack, tc.needle, got, tc.want)
		}
	}
}

func TestNormalizeAndTokens(t *testing.T) {
	if got := Normalize("  Додай\t\tКОНТАКТ  "); got != "додай контакт" {
		t.Fatalf("unexpected normalized form %q", got)
	}
	got := Tokens(Normalize("Ім'я, телефон: 050-123!"))
	want := []string{"ім'я", "телефон", "050", "123"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithOverlayAddsPhrases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phrases.yaml")
	overlay := `commands:
  - id: add_contact
    patterns:
      de:
        - kontakt hinzufügen
    examples:
      - kontakt hinzufügen
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay failed: %v", err)
	}
	reg, err := LoadWithOverlay(path)
	if err != nil {
		t.Fatalf("LoadWithOverlay failed: %v", err)
	}
	id, confidence := reg.FindBest("Kontakt hinzufügen")
	if id != AddContact || confidence != 1 {
		t.Fatalf("overlay phrase resolved to (%s, %.2f)", id, confidence)
	}
	if diff := cmp.Diff([]string{"de", "en", "uk"}, reg.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	def, ok := Default().Lookup(AddContact)
	if !ok {
		t.Fatalf("default registry lost add_contact")
	}
	if _, has := def.Patterns["de"]; has {
		t.Fatalf("overlay leaked into the default registry")
	}
}

func TestLoadWithOverlayRejectsUnknownID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.yaml")
	if err := os.WriteFile(path, []byte("commands:\n  - id: teleport\n    examples: [beam me up]\n"), 0o600); err != nil {
		t.Fatalf("write overlay failed: %v", err)
	}
	if _, err := LoadWithOverlay(path); err == nil {
		t.Fatalf("expected unknown overlay id to fail")
	}
}

func TestLoadWithOverlayMissingFileUsesDefault(t *testing.T) {
	reg, err := LoadWithOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg != Default() {
		t.Fatalf("expected default registry for missing overlay")
	}
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	if _, err := ParseCatalog([]byte("commands:\n  - id: help\n    examplez: [help]\n")); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}
