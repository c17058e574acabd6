package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ashwch/pomichnyk/internal/command"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/ui"
)

const maxLineBytes = 1024 * 1024

// Prompter collects the follow-up input a command needs.
type Prompter interface {
	Ask(prompt string) (string, error)
	Confirm(question string) (bool, error)
	// Pick offers ranked commands. used is false when the prompter has no
	// way to show a picker.
	Pick(title string, choices []ui.Choice) (id command.ID, used bool, err error)
}

// Console reads lines on demand from in, so a full-screen UI backend can own
// the terminal between prompts.
type Console struct {
	ctx      context.Context
	out      io.Writer
	backend  string
	catalog  i18n.Catalog
	requests chan struct{}
	lines    chan string
	done     chan struct{}
}

func NewConsole(ctx context.Context, in io.Reader, out io.Writer, backend string, catalog i18n.Catalog) *Console {
	c := &Console{
		ctx:      ctx,
		out:      out,
		backend:  ui.NormalizeBackend(backend),
		catalog:  catalog,
		requests: make(chan struct{}),
		lines:    make(chan string, 1),
		done:     make(chan struct{}),
	}
	go c.scan(in)
	return c
}

func (c *Console) scan(in io.Reader) {
	defer close(c.lines)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.done:
			return
		case <-c.requests:
		}
		if !scanner.Scan() {
			return
		}
		c.lines <- scanner.Text()
	}
}

// ReadLine prints prompt and waits for one trimmed line. It returns io.EOF
// when input ends and the context error when ctx is cancelled.
func (c *Console) ReadLine(prompt string) (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)
	select {
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	case c.requests <- struct{}{}:
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
	select {
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// Close stops the reader goroutine once it is idle. A read already in
// progress finishes first.
func (c *Console) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *Console) Ask(prompt string) (string, error) {
	return c.ReadLine(prompt)
}

func (c *Console) Confirm(question string) (bool, error) {
	if ui.IsInteractiveBackend(c.backend) {
		approved, used, err := ui.ConfirmDeletion(c.backend, ui.ConfirmLabels{
			Question: question,
			Yes:      c.catalog.T(i18n.Yes),
			No:       c.catalog.T(i18n.No),
		})
		if err == nil && used {
			return approved, nil
		}
	}
	answer, err := c.ReadLine(fmt.Sprintf("%s (%s/%s): ", question, c.catalog.T(i18n.Yes), c.catalog.T(i18n.No)))
	if err != nil {
		return false, err
	}
	return ui.IsYes(answer), nil
}

func (c *Console) Pick(title string, choices []ui.Choice) (command.ID, bool, error) {
	if !ui.IsInteractiveBackend(c.backend) {
		return command.None, false, nil
	}
	return ui.SelectCommand(c.backend, title, choices)
}
