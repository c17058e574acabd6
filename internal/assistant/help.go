package assistant

import (
	"strings"

	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/router"
	"github.com/ashwch/pomichnyk/internal/ui"
)

const helpExamples = 2

var helpSections = []struct {
	title string
	ids   []command.ID
}{
	{title: i18n.HelpContacts, ids: []command.ID{command.AddContact, command.SearchContact, command.ShowContacts, command.EditContact, command.DeleteContact}},
	{title: i18n.HelpNotes, ids: []command.ID{command.AddNote, command.SearchNotes, command.ShowNotes, command.EditNote, command.DeleteNote}},
	{title: i18n.HelpOther, ids: []command.ID{command.Birthdays, command.Help, command.Exit}},
}

func (s *Session) help(_ router.Decision) (string, error) {
	return s.HelpText(), nil
}

// HelpText lists every command with its phrasing in each language. Commands
// missing from the registry still get a line with a placeholder description.
func (s *Session) HelpText() string {
	registry := s.router.Registry()
	lang := s.catalog.Language()

	lines := []string{ui.Heading(s.catalog.T(i18n.HelpTitle))}
	for _, section := range helpSections {
		lines = append(lines, "", ui.Section(s.catalog.T(section.title)))
		for _, id := range section.ids {
			description, ok := registry.LocalizedDescription(id, lang)
			if !ok {
				description = s.catalog.T(i18n.HelpNoDescription)
			}
			lines = append(lines, "  • "+s.phrasing(id)+" - "+description)
			if examples := registry.Examples(id); len(examples) > 0 {
				if len(examples) > helpExamples {
					examples = examples[:helpExamples]
				}
				lines = append(lines, ui.Hint("      "+s.catalog.T(i18n.HelpExamples)+": "+strings.Join(examples, "; ")))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Session) phrasing(id command.ID) string {
	def, ok := s.router.Registry().Lookup(id)
	if !ok {
		return id.String()
	}
	lang := s.catalog.Language()
	order := []string{lang}
	for _, other := range s.router.Registry().Languages() {
		if other != lang {
			order = append(order, other)
		}
	}
	phrases := make([]string, 0, len(order))
	for _, l := range order {
		if variants := def.Patterns[l]; len(variants) > 0 {
			phrases = append(phrases, variants[0])
		}
	}
	if len(phrases) == 0 {
		return id.String()
	}
	return strings.Join(phrases, " / ")
}

func (s *Session) exit(_ router.Decision) (string, error) {
	return s.catalog.T(i18n.Goodbye), nil
}
