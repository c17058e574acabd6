package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBackendCandidatesAuto(t *testing.T) {
	got := backendCandidates("auto")
	want := []string{BackendHuh, BackendBubbleTea, BackendTView}
	assertBackendOrder(t, got, want)
}

func TestBackendCandidatesBubbleTeaFallsBack(t *testing.T) {
	got := backendCandidates("bubbletea")
	want := []string{BackendBubbleTea, BackendHuh, BackendTView}
	assertBackendOrder(t, got, want)
}

func TestBackendCandidatesHuhFallsBack(t *testing.T) {
	got := backendCandidates("huh")
	want := []string{BackendHuh, BackendBubbleTea, BackendTView}
	assertBackendOrder(t, got, want)
}

func TestBackendCandidatesTViewFallsBack(t *testing.T) {
	got := backendCandidates("tview")
	want := []string{BackendTView, BackendBubbleTea, BackendHuh}
	assertBackendOrder(t, got, want)
}

func TestBackendCandidatesPlain(t *testing.T) {
	got := backendCandidates("plain")
	want := []string{BackendPlain}
	assertBackendOrder(t, got, want)
}

func TestNormalizeBackendUnknownIsAuto(t *testing.T) {
	if got := NormalizeBackend(" TView "); got != BackendTView {
		t.Fatalf("expected tview, got %q", got)
	}
	if got := NormalizeBackend("gtk"); got != BackendAuto {
		t.Fatalf("expected auto for unknown backend, got %q", got)
	}
	if IsInteractiveBackend("plain") {
		t.Fatalf("plain must not be interactive")
	}
}

func TestEffectiveFallsBackToPlainWithoutTerminal(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "input"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer file.Close()

	if got := Effective("bubbletea", file, file); got != BackendPlain {
		t.Fatalf("expected plain for regular files, got %q", got)
	}
	if got := Effective("huh", nil, nil); got != BackendPlain {
		t.Fatalf("expected plain for missing files, got %q", got)
	}
}

func assertBackendOrder(t *testing.T, got []string, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected candidate length: got=%d want=%d", len(got), len(want))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("candidate[%d] mismatch: got=%q want=%q", idx, got[idx], want[idx])
		}
	}
}
