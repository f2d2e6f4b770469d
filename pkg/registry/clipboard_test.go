package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestClipboardCopyArgv(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"windows", []string{"clip"}},
		{"darwin", []string{"pbcopy"}},
		{"linux", []string{"xclip", "-selection", "clipboard"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got := clipboardCopyArgv(tt.goos)
			if len(got) != len(tt.want) {
				t.Fatalf("argv = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("argv[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPasteKeysArgv(t *testing.T) {
	if got := pasteKeysArgv("linux"); got[0] != "xdotool" {
		t.Errorf("linux paste tool = %q, want xdotool", got[0])
	}
	if got := pasteKeysArgv("darwin"); got[0] != "osascript" {
		t.Errorf("darwin paste tool = %q, want osascript", got[0])
	}
	if got := pasteKeysArgv("windows"); got[0] != "powershell" {
		t.Errorf("windows paste tool = %q, want powershell", got[0])
	}
}

func TestCopyPipesText(t *testing.T) {
	runner := NewMockRunner()
	r := newTestRegistry("linux", runner)

	if err := r.Copy(context.Background(), "def add(a, b):\n    return a + b"); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	call := runner.LastCall()
	if call == nil || call.Method != "RunInput" {
		t.Fatalf("expected a RunInput call, got %+v", call)
	}
	if call.Argv[0] != "xclip" {
		t.Errorf("copy command = %v", call.Argv)
	}
	if call.Input != "def add(a, b):\n    return a + b" {
		t.Errorf("copied text = %q", call.Input)
	}
}

func TestCopyReportsFailure(t *testing.T) {
	runner := NewMockRunner()
	runner.RunInputFunc = func(ctx context.Context, input, name string, args ...string) error {
		return errors.New("no display")
	}
	r := newTestRegistry("linux", runner)

	if err := r.Copy(context.Background(), "text"); err == nil {
		t.Error("expected copy error to propagate")
	}
}

func TestPasteKeysRuns(t *testing.T) {
	runner := NewMockRunner()
	r := newTestRegistry("linux", runner)

	if err := r.PasteKeys(context.Background()); err != nil {
		t.Fatalf("PasteKeys: %v", err)
	}

	call := runner.LastCall()
	if call == nil || call.Method != "Run" {
		t.Fatalf("expected a Run call, got %+v", call)
	}
	if call.Argv[0] != "xdotool" {
		t.Errorf("paste command = %v", call.Argv)
	}
}

func TestNewMergesManualApps(t *testing.T) {
	r := New(
		WithRunner(NewMockRunner()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithDiscovery(false),
		WithManualApps(map[string][]string{
			"Chrome (x64)": {"/opt/google/chrome/chrome"},
			"empty":        {},
		}),
	)

	cap, ok := r.Resolve("chrome")
	if !ok || cap.Kind != KindLocal {
		t.Fatalf("Resolve(chrome) = %+v, want manual local entry", cap)
	}
	if cap.Target != "/opt/google/chrome/chrome" {
		t.Errorf("chrome target = %q", cap.Target)
	}

	// Empty launch commands are dropped, not merged.
	if _, ok := r.Resolve("empty"); ok {
		t.Error("expected empty manual entry to be ignored")
	}
}
