package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendHuh       = "huh"
	BackendTView     = "tview"
	BackendPlain     = "plain"
)

func NormalizeBackend(backend string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendAuto, "":
		return BackendAuto
	case BackendBubbleTea:
		return BackendBubbleTea
	case BackendHuh:
		return BackendHuh
	case BackendTView:
		return BackendTView
	case BackendPlain:
		return BackendPlain
	default:
		return BackendAuto
	}
}

func IsInteractiveBackend(backend string) bool {
	switch NormalizeBackend(backend) {
	case BackendPlain:
		return false
	default:
		return true
	}
}

// Effective downgrades backend to plain when either end of the session is not
// a terminal, so piped input never opens a full-screen dialog.
func Effective(backend string, in *os.File, out *os.File) string {
	backend = NormalizeBackend(backend)
	if !isTerminal(in) || !isTerminal(out) {
		return BackendPlain
	}
	return backend
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func backendCandidates(backend string) []string {
	switch NormalizeBackend(backend) {
	case BackendBubbleTea:
		return []string{BackendBubbleTea, BackendHuh, BackendTView}
	case BackendHuh:
		return []string{BackendHuh, BackendBubbleTea, BackendTView}
	case BackendTView:
		return []string{BackendTView, BackendBubbleTea, BackendHuh}
	case BackendPlain:
		return []string{BackendPlain}
	default:
		return []string{BackendHuh, BackendBubbleTea, BackendTView}
	}
}
