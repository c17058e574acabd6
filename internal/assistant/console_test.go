package assistant

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/ui"
	"go.uber.org/goleak"
)

func TestConsoleReadsLinesOnDemand(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var out bytes.Buffer
	c := NewConsole(context.Background(), strings.NewReader("  перший  \nsecond\n"), &out, ui.BackendPlain, i18n.LoadCatalog("en"))
	defer c.Close()

	first, err := c.ReadLine("> ")
	if err != nil || first != "перший" {
		t.Fatalf("expected trimmed first line, got %q, %v", first, err)
	}
	second, err := c.Ask("? ")
	if err != nil || second != "second" {
		t.Fatalf("expected second line, got %q, %v", second, err)
	}
	if _, err := c.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after input ends, got %v", err)
	}
	if out.String() != "> ? > " {
		t.Fatalf("unexpected prompts %q", out.String())
	}
}

func TestConsoleReadsLongLines(t *testing.T) {
	long := strings.Repeat("нотатка ", 20*1024)
	c := NewConsole(context.Background(), strings.NewReader(long+"\nnext\n"), io.Discard, ui.BackendPlain, i18n.LoadCatalog("en"))
	defer c.Close()

	got, err := c.ReadLine("> ")
	if err != nil {
		t.Fatalf("expected long line to be read, got %v", err)
	}
	if got != strings.TrimSpace(long) {
		t.Fatalf("long line was cut: got %d bytes, want %d", len(got), len(strings.TrimSpace(long)))
	}
	if next, err := c.ReadLine("> "); err != nil || next != "next" {
		t.Fatalf("expected the following line, got %q, %v", next, err)
	}
}

func TestConsoleCloseStopsIdleReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(context.Background(), pr, io.Discard, ui.BackendPlain, i18n.LoadCatalog("en"))
	c.Close()
	c.Close()
}

func TestConsoleReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConsole(ctx, strings.NewReader("ignored\n"), io.Discard, ui.BackendPlain, i18n.LoadCatalog("en"))
	defer c.Close()
	if _, err := c.ReadLine("> "); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConsolePlainConfirmAndPick(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(context.Background(), strings.NewReader("так\nno\n"), &out, ui.BackendPlain, i18n.LoadCatalog("en"))
	defer c.Close()

	approved, err := c.Confirm("Delete?")
	if err != nil || !approved {
		t.Fatalf("expected approval, got %v, %v", approved, err)
	}
	approved, err = c.Confirm("Delete?")
	if err != nil || approved {
		t.Fatalf("expected refusal, got %v, %v", approved, err)
	}
	if !strings.Contains(out.String(), "Delete? (") {
		t.Fatalf("expected plain confirm prompt, got %q", out.String())
	}

	_, used, err := c.Pick("Pick", []ui.Choice{{Label: "add contact"}})
	if err != nil || used {
		t.Fatalf("plain console must not show a picker, got used=%v err=%v", used, err)
	}
}
