package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// Choice is one row of the "did you mean" picker.
type Choice struct {
	ID    command.ID
	Label string
}

func BuildChoices(matches []command.Match, describe func(command.ID) string) []Choice {
	choices := make([]Choice, 0, len(matches))
	seen := map[command.ID]struct{}{}
	for _, match := range matches {
		if !match.ID.Known() {
			continue
		}
		if _, ok := seen[match.ID]; ok {
			continue
		}
		seen[match.ID] = struct{}{}
		label := match.ID.String()
		if describe != nil {
			if text := strings.TrimSpace(describe(match.ID)); text != "" {
				label = text
			}
		}
		choices = append(choices, Choice{
			ID:    match.ID,
			Label: fmt.Sprintf("%s (%.0f%%)", label, match.Confidence*100),
		})
	}
	return choices
}

// SelectCommand shows the picker in the first backend that works. It returns
// (None, true, nil) when the user dismissed the picker and used=false when no
// interactive backend ran.
func SelectCommand(backend string, title string, choices []Choice) (command.ID, bool, error) {
	if len(choices) == 0 {
		return command.None, false, nil
	}

	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			selected command.ID
			used     bool
			err      error
		)
		switch candidate {
		case BackendBubbleTea:
			selected, used, err = selectWithBubbleTea(title, choices)
		case BackendHuh:
			selected, used, err = selectWithHuh(title, choices)
		case BackendTView:
			selected, used, err = selectWithTView(title, choices)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if used {
			return selected, true, nil
		}
	}
	if firstErr != nil {
		return command.None, false, firstErr
	}
	return command.None, false, nil
}

func selectWithHuh(title string, choices []Choice) (command.ID, bool, error) {
	options := make([]huh.Option[command.ID], 0, len(choices)+1)
	for _, choice := range choices {
		options = append(options, huh.NewOption(choice.Label, choice.ID))
	}
	options = append(options, huh.NewOption("-", command.None))

	selected := choices[0].ID
	prompt := huh.NewSelect[command.ID]().
		Title(title).
		Options(options...).
		Height(huhSelectHeight(len(options))).
		Value(&selected).
		WithTheme(huh.ThemeCharm())

	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return command.None, true, nil
		}
		return command.None, false, err
	}
	return selected, true, nil
}

type bubbleSelectorItem struct {
	choice Choice
}

func (i bubbleSelectorItem) Title() string       { return i.choice.Label }
func (i bubbleSelectorItem) Description() string { return "" }
func (i bubbleSelectorItem) FilterValue() string { return i.choice.Label + " " + i.choice.ID.String() }

type bubbleSelectorModel struct {
	list      list.Model
	selection command.ID
	cancelled bool
	options   int
}

func (m bubbleSelectorModel) Init() tea.Cmd { return nil }

func (m bubbleSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := bubblePickerSize(k.Width, k.Height, m.options)
		m.list.SetSize(width, height)
		return m, nil
	case tea.KeyMsg:
		switch k.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(bubbleSelectorItem); ok {
				m.selection = item.choice.ID
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m bubbleSelectorModel) View() string {
	return m.list.View()
}

func newBubbleSelectorModel(title string, choices []Choice) bubbleSelectorModel {
	items := make([]list.Item, 0, len(choices))
	for _, choice := range choices {
		items = append(items, bubbleSelectorItem{choice: choice})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	width, height := bubblePickerSize(80, 24, len(items))
	picker := list.New(items, delegate, width, height)
	picker.Title = title
	picker.Styles.Title = headingStyle
	picker.SetShowHelp(false)
	picker.SetFilteringEnabled(false)

	return bubbleSelectorModel{list: picker, options: len(items)}
}

func selectWithBubbleTea(title string, choices []Choice) (command.ID, bool, error) {
	final, err := tea.NewProgram(newBubbleSelectorModel(title, choices)).Run()
	if err != nil {
		return command.None, false, err
	}
	out, ok := final.(bubbleSelectorModel)
	if !ok || out.cancelled {
		return command.None, true, nil
	}
	return out.selection, true, nil
}

func selectWithTView(title string, choices []Choice) (command.ID, bool, error) {
	app := tview.NewApplication()
	listView := tview.NewList()
	listView.SetBorder(true)
	listView.SetTitle(title)
	listView.ShowSecondaryText(false)

	selected := command.None
	for _, choice := range choices {
		current := choice
		listView.AddItem(current.Label, "", 0, func() {
			selected = current.ID
			app.Stop()
		})
	}
	listView.SetDoneFunc(func() {
		app.Stop()
	})

	if err := app.SetRoot(listView, true).SetFocus(listView).Run(); err != nil {
		return command.None, false, err
	}
	return selected, true, nil
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func bubblePickerSize(termWidth, termHeight, optionCount int) (int, int) {
	if termWidth <= 0 {
		termWidth = 80
	}
	if termHeight <= 0 {
		termHeight = 24
	}
	if optionCount < 1 {
		optionCount = 1
	}

	maxWidth := termWidth
	minWidth := 32
	if maxWidth < minWidth {
		minWidth = maxWidth
	}
	width := clampInt(termWidth-4, minWidth, maxWidth)

	visibleItems := clampInt(optionCount, 3, 12)
	desiredHeight := visibleItems + 6

	maxHeight := termHeight - 2
	if maxHeight <= 0 {
		maxHeight = termHeight
	}
	if maxHeight <= 0 {
		maxHeight = 1
	}
	minHeight := 8
	if maxHeight < minHeight {
		minHeight = maxHeight
	}
	return width, clampInt(desiredHeight, minHeight, maxHeight)
}

func huhSelectHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, 10)
}
