package pluto

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plutovoice/go-pluto/pkg/inference"
	"github.com/plutovoice/go-pluto/pkg/listen"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestListenLoopWakeThenCommand(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.listener.Enqueue(listen.Utterance{Text: "hey pluto", Lang: listen.LangEnglish})
	ta.listener.Enqueue(listen.Utterance{Text: "open chrome", Lang: listen.LangEnglish})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	waitFor(t, func() bool { return ta.engine.CallCount() >= 2 })
	cancel()

	got := ta.spoken(t)
	want := []string{"Yes, how can I help?", "Opening chrome"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
	if n := ta.runner.CallCount("Start"); n != 1 {
		t.Errorf("launches = %d, want 1", n)
	}
}

func TestListenLoopWakeWithoutFollowup(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.listener.Enqueue(listen.Utterance{Text: "pluto", Lang: listen.LangEnglish})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	waitFor(t, func() bool { return ta.engine.CallCount() >= 2 })
	cancel()

	got := ta.spoken(t)
	want := []string{"Yes, how can I help?", "I didn't hear a command"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
	if n := len(ta.runner.Calls()); n != 0 {
		t.Errorf("runner calls = %d, want 0", n)
	}
}

func TestListenLoopWakeOutranksDirect(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.listener.Enqueue(listen.Utterance{Text: "pluto open chrome", Lang: listen.LangEnglish})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	waitFor(t, func() bool { return ta.engine.CallCount() >= 2 })
	cancel()

	// The wake word wins: the utterance acknowledges and waits for a
	// follow-up instead of dispatching "open chrome" directly.
	got := ta.spoken(t)
	want := []string{"Yes, how can I help?", "I didn't hear a command"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
	if n := ta.runner.CallCount("Start"); n != 0 {
		t.Errorf("launches = %d, want 0", n)
	}
}

func TestListenLoopLanguageFollowsUtterance(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.listener.Enqueue(listen.Utterance{Text: "chrome thorakku"})
	ta.listener.Enqueue(listen.Utterance{Text: "open chrome"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	waitFor(t, func() bool { return ta.engine.CallCount() >= 2 })
	cancel()

	got := ta.spoken(t)
	want := []string{"chrome thorakkuren", "Opening chrome"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
	if lang := ta.Language(); lang != listen.LangEnglish {
		t.Errorf("session language = %q, want en after the English command", lang)
	}
}

func TestListenLoopPausedSkipsCapture(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.App.listening = false
	ta.listener.Enqueue(listen.Utterance{Text: "open chrome", Lang: listen.LangEnglish})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	time.Sleep(300 * time.Millisecond)
	if n := ta.listener.Calls(); n != 0 {
		t.Fatalf("captures while paused = %d, want 0", n)
	}

	ta.SetListening(true)
	waitFor(t, func() bool { return ta.engine.CallCount() >= 1 })
	cancel()

	if got, want := ta.spoken(t), []string{"Opening chrome"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
}

func TestListenLoopIgnoresChatter(t *testing.T) {
	ta := newTestApp(t, deadModel())
	ta.listener.Enqueue(listen.Utterance{Text: "nice weather today", Lang: listen.LangEnglish})
	ta.listener.Enqueue(listen.Utterance{Text: "open chrome", Lang: listen.LangEnglish})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.listenLoop(ctx)

	waitFor(t, func() bool { return ta.engine.CallCount() >= 1 })
	cancel()

	if got, want := ta.spoken(t), []string{"Opening chrome"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("spoken = %q, want %q", got, want)
	}

	// The chatter never reached classification, only the command did.
	provider := ta.provider.(*inference.Mock)
	if n := provider.CallCount("Chat"); n != 1 {
		t.Errorf("model calls = %d, want 1", n)
	}
}
