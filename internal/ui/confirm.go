package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// ConfirmLabels carries the already localized dialog text.
type ConfirmLabels struct {
	Question string
	Yes      string
	No       string
}

// ConfirmDeletion asks a yes/no question in the first backend that works.
// The second result is false when no interactive backend ran, in which case
// the caller asks on its own input stream.
func ConfirmDeletion(backend string, labels ConfirmLabels) (bool, bool, error) {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			approved bool
			err      error
		)
		switch candidate {
		case BackendBubbleTea:
			approved, err = confirmWithBubbleTea(labels)
		case BackendHuh:
			approved, err = confirmWithHuh(labels)
		case BackendTView:
			approved, err = confirmWithTView(labels)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return approved, true, nil
	}
	if firstErr != nil {
		return false, false, firstErr
	}
	return false, false, nil
}

func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "т", "так":
		return true
	default:
		return false
	}
}

type bubbleConfirmModel struct {
	labels   ConfirmLabels
	approved bool
	done     bool
}

func (m bubbleConfirmModel) Init() tea.Cmd { return nil }

func (m bubbleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.KeyMsg:
		key := strings.ToLower(k.String())
		switch {
		case IsYes(key):
			m.approved = true
			m.done = true
			return m, tea.Quit
		case key == "n" || key == "н" || key == "esc" || key == "ctrl+c" || key == "enter":
			m.approved = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m bubbleConfirmModel) View() string {
	return Heading(m.labels.Question) + "\n\n" +
		Hint("[y] "+m.labels.Yes+"  [n] "+m.labels.No)
}

func confirmWithBubbleTea(labels ConfirmLabels) (bool, error) {
	final, err := tea.NewProgram(bubbleConfirmModel{labels: labels}).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(bubbleConfirmModel)
	if !ok || !out.done {
		return false, nil
	}
	return out.approved, nil
}

func confirmWithHuh(labels ConfirmLabels) (bool, error) {
	approved := false
	prompt := huh.NewConfirm().
		Title(labels.Question).
		Affirmative(labels.Yes).
		Negative(labels.No).
		Value(&approved).
		WithTheme(huh.ThemeCharm())
	err := prompt.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

func confirmWithTView(labels ConfirmLabels) (bool, error) {
	app := tview.NewApplication()
	approved := false
	done := false

	modal := tview.NewModal().
		SetText(labels.Question).
		AddButtons([]string{labels.Yes, labels.No}).
		SetDoneFunc(func(index int, _ string) {
			done = true
			approved = index == 0
			app.Stop()
		})

	if err := app.SetRoot(modal, true).Run(); err != nil {
		return false, err
	}
	if !done {
		return false, nil
	}
	return approved, nil
}
