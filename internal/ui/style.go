package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("87"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("153"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))
)

func Heading(text string) string {
	return headingStyle.Render(text)
}

func Section(text string) string {
	return sectionStyle.Render(text)
}

func Hint(text string) string {
	return hintStyle.Render(text)
}

func Banner(title string, lines ...string) string {
	body := []string{Heading(title)}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		body = append(body, Hint(line))
	}
	return cardStyle.Render(strings.Join(body, "\n"))
}
