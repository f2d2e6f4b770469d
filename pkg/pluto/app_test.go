package pluto

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plutovoice/go-pluto/pkg/inference"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Setenv("PLUTO_PORT", "")
	t.Setenv("PLUTO_LANG", "")

	cfg := DefaultConfig()
	cfg.Language = "de"
	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted an unsupported language")
	}

	app, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !app.Listening() {
		t.Error("listening should start enabled")
	}
	if app.Language() != "en" {
		t.Errorf("language = %q, want en", app.Language())
	}
}

func TestStatusSnapshot(t *testing.T) {
	ta := newTestApp(t, inference.NewMock())

	st := ta.Status(context.Background())

	if !st.Listening {
		t.Error("Listening = false, want true")
	}
	if st.Language != "en" {
		t.Errorf("Language = %q, want en", st.Language)
	}
	if !st.Online {
		t.Error("Online = false with a succeeding dial")
	}
	if len(st.AvailableModels) != 3 {
		t.Errorf("AvailableModels = %v, want the three mock models", st.AvailableModels)
	}
	if st.CapabilityCounts["web"] != 9 {
		t.Errorf("web capabilities = %d, want 9", st.CapabilityCounts["web"])
	}
	if st.CapabilityCounts["system"] != 7 {
		t.Errorf("system capabilities = %d, want 7", st.CapabilityCounts["system"])
	}
	if st.CapabilityCounts["manual"] < 3 {
		t.Errorf("manual capabilities = %d, want at least the injected three", st.CapabilityCounts["manual"])
	}
	if st.CapabilityCounts["discovered"] != 0 {
		t.Errorf("discovered = %d, want 0 with discovery off", st.CapabilityCounts["discovered"])
	}
	if st.HasGeneratedCode {
		t.Error("HasGeneratedCode = true before any generation")
	}
}

func TestOnlineProbeCached(t *testing.T) {
	ta := newTestApp(t, inference.NewMock())
	dials := 0
	ta.App.dial = func(addr string, timeout time.Duration) error {
		dials++
		return nil
	}

	if !ta.Online() {
		t.Fatal("Online = false with a succeeding dial")
	}
	if !ta.Online() {
		t.Fatal("cached Online = false")
	}
	if dials != 1 {
		t.Errorf("dials = %d, want 1 within the probe TTL", dials)
	}
}

func TestOnlineProbeFallsBack(t *testing.T) {
	ta := newTestApp(t, inference.NewMock())
	var addrs []string
	ta.App.dial = func(addr string, timeout time.Duration) error {
		addrs = append(addrs, addr)
		return errors.New("network unreachable")
	}

	if ta.Online() {
		t.Fatal("Online = true with every probe failing")
	}
	if len(addrs) != 2 || addrs[0] != primaryProbeAddr || addrs[1] != fallbackProbeAddr {
		t.Errorf("probe order = %v, want primary then fallback", addrs)
	}
}

func TestSetListening(t *testing.T) {
	ta := newTestApp(t, inference.NewMock())

	ta.SetListening(false)
	if ta.Listening() {
		t.Error("Listening = true after disable")
	}
	ta.SetListening(true)
	if !ta.Listening() {
		t.Error("Listening = false after enable")
	}
}

func TestSetLanguage(t *testing.T) {
	ta := newTestApp(t, inference.NewMock())

	if err := ta.SetLanguage("ta"); err != nil {
		t.Fatalf("SetLanguage(ta): %v", err)
	}
	if ta.Language() != "ta" {
		t.Errorf("language = %q, want ta", ta.Language())
	}

	if err := ta.SetLanguage("fr"); err == nil {
		t.Fatal("SetLanguage accepted an unsupported language")
	}
	if ta.Language() != "ta" {
		t.Errorf("language = %q, want ta unchanged after rejected switch", ta.Language())
	}
}
