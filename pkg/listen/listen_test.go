package listen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"open chrome", LangEnglish},
		{"hello there", LangEnglish},
		{"chrome thorakku", LangTamil},
		{"notepad thoraku", LangTamil},
		{"spotify muddu", LangTamil},
		{"chrome mudu", LangTamil},
		{"volume kammi pannu", LangTamil},
		{"pattu podu", LangTamil},
		{"vanakkam pluto", LangTamil},
		{"sollunga", LangTamil},
		{"command kekkala", LangTamil},
		{"app kandupidikka mudiyala", LangTamil},
		{"Chrome THORAKKU", LangTamil},
		{"", LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestUtteranceEmpty(t *testing.T) {
	tests := []struct {
		name string
		u    Utterance
		want bool
	}{
		{"zero value", Utterance{}, true},
		{"whitespace only", Utterance{Text: "   ", Lang: LangEnglish}, true},
		{"speech", Utterance{Text: "hi", Lang: LangEnglish}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMockListenerReplaysQueue(t *testing.T) {
	m := NewMockListener(
		Utterance{Text: "open chrome"},
		Utterance{Text: "chrome muddu"},
	)
	ctx := context.Background()

	first, err := m.Listen(ctx, 3*time.Second, 6*time.Second)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if first.Text != "open chrome" || first.Lang != LangEnglish {
		t.Errorf("first utterance = %+v, want open chrome / en", first)
	}

	second, err := m.Listen(ctx, 3*time.Second, 6*time.Second)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if second.Text != "chrome muddu" || second.Lang != LangTamil {
		t.Errorf("second utterance = %+v, want chrome muddu / ta", second)
	}

	// Drained queue means silence, not an error.
	third, err := m.Listen(ctx, 3*time.Second, 6*time.Second)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if !third.Empty() || third.Lang != LangEnglish {
		t.Errorf("drained queue returned %+v, want empty / en", third)
	}

	if got := m.Calls(); got != 3 {
		t.Errorf("Calls() = %d, want 3", got)
	}
}

func TestMockListenerEnqueue(t *testing.T) {
	m := NewMockListener()
	m.Enqueue(Utterance{Text: "play despacito"})

	u, err := m.Listen(context.Background(), time.Second, time.Second)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if u.Text != "play despacito" {
		t.Errorf("Text = %q, want %q", u.Text, "play despacito")
	}
}

func TestMockListenerKeepsExplicitLang(t *testing.T) {
	m := NewMockListener(Utterance{Text: "hello", Lang: LangTamil})

	u, err := m.Listen(context.Background(), time.Second, time.Second)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if u.Lang != LangTamil {
		t.Errorf("Lang = %q, want explicit %q preserved", u.Lang, LangTamil)
	}
}

func TestMockListenerContextCanceled(t *testing.T) {
	m := NewMockListener(Utterance{Text: "open chrome"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u, err := m.Listen(ctx, time.Second, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Listen() error = %v, want context.Canceled", err)
	}
	if !u.Empty() {
		t.Errorf("utterance = %+v, want empty on cancellation", u)
	}
	if got := m.Calls(); got != 0 {
		t.Errorf("Calls() = %d, want 0 after canceled attempt", got)
	}
}

func TestNewAutoSelectsMock(t *testing.T) {
	l, err := New(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if got := l.Name(); got != "mock" {
		t.Errorf("Name() = %q, want mock", got)
	}
}

func TestNewAutoSelectsExec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Command = []string{"python3", "recognize.py"}

	l, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if got := l.Name(); got != "exec" {
		t.Errorf("Name() = %q, want exec", got)
	}
}

func TestNewExplicitBackend(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"mock", Config{Backend: BackendMock}, "mock"},
		{"exec", Config{Backend: BackendExec, Command: []string{"recognize"}}, "exec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer l.Close()

			if got := l.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"auto", Config{Backend: BackendAuto}, false},
		{"mock", Config{Backend: BackendMock}, false},
		{"exec with command", Config{Backend: BackendExec, Command: []string{"recognize"}}, false},
		{"exec without command", Config{Backend: BackendExec}, true},
		{"unknown backend", Config{Backend: Backend("walrus")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Backend: BackendExec}, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("New() with exec backend and no command should fail")
	}
}

func TestBuildArgv(t *testing.T) {
	got := buildArgv([]string{"python3", "recognize.py"}, 3*time.Second, 6*time.Second)
	want := []string{"python3", "recognize.py", "--timeout", "3", "--phrase-limit", "6"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildArgv() = %v, want %v", got, want)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"open chrome\n", "open chrome"},
		{"open chrome\nextra noise\n", "open chrome"},
		{"open chrome", "open chrome"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
