package pluto

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plutovoice/go-pluto/internal/log"
	"github.com/plutovoice/go-pluto/pkg/control"
	"github.com/plutovoice/go-pluto/pkg/debug"
	"github.com/plutovoice/go-pluto/pkg/inference"
	"github.com/plutovoice/go-pluto/pkg/intent"
	"github.com/plutovoice/go-pluto/pkg/listen"
	"github.com/plutovoice/go-pluto/pkg/protocol"
	"github.com/plutovoice/go-pluto/pkg/registry"
	"github.com/plutovoice/go-pluto/pkg/tts"
	"github.com/plutovoice/go-pluto/pkg/web"
)

// Connectivity probes are plain TCP dials, cached so status requests don't
// hit the network on every poll.
const (
	onlineProbeTTL    = 30 * time.Second
	primaryProbeAddr  = "www.google.com:80"
	primaryProbeWait  = 5 * time.Second
	fallbackProbeAddr = "8.8.8.8:53"
	fallbackProbeWait = 3 * time.Second

	// pasteWarmup is how long a freshly launched editor gets before the
	// paste keystroke lands.
	pasteWarmup = 2 * time.Second
)

// App is the main assistant orchestrator.
// It owns the session state and manages all components and their lifecycle.
type App struct {
	config Config

	// Core components
	classifier *intent.Classifier
	registry   *registry.Registry
	listener   listen.Listener
	engine     tts.Engine
	speaker    *tts.Speaker
	provider   inference.Provider

	// Dashboard surfaces
	webServer  *web.Server
	controlHub *control.Hub

	logger *slog.Logger

	// Session state, shared by the loop and the control surfaces.
	mu        sync.Mutex
	listening bool
	language  string

	// One command in flight at a time; the loop, the REST API, and the
	// control channel all funnel through HandleCommand.
	cmdMu sync.Mutex

	// Cached connectivity probe.
	probeMu     sync.Mutex
	probeOnline bool
	probeAt     time.Time
	dial        func(addr string, timeout time.Duration) error

	warmup time.Duration
}

// New creates a new assistant with the given configuration.
func New(cfg Config) (*App, error) {
	// Apply environment overrides
	cfg.LoadEnvConfig()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Enabled = cfg.Debug

	return &App{
		config:    cfg,
		logger:    log.L(),
		listening: cfg.ListenEnabled,
		language:  cfg.Language,
		dial:      dialProbe,
		warmup:    pasteWarmup,
	}, nil
}

// Init initializes all components.
// Call this after New() and before Run().
func (a *App) Init() error {
	fmt.Println("🤖 Pluto - Voice Activated Desktop Assistant")
	fmt.Println("============================================")
	if debug.Enabled {
		fmt.Println("🐛 Debug mode enabled")
	}

	// Model daemon client
	fmt.Print("🧠 Connecting to model daemon... ")
	provider, err := a.buildProvider()
	if err != nil {
		return fmt.Errorf("inference init: %w", err)
	}
	a.provider = provider
	a.classifier = intent.NewClassifier(provider, intent.WithLogger(a.logger))
	fmt.Println("✅")

	// Capability registry
	fmt.Print("🔧 Building capability registry... ")
	a.registry = registry.New(
		registry.WithLogger(a.logger),
		registry.WithDiscovery(a.config.Discover),
		registry.WithManualApps(a.config.ManualApps),
	)
	fmt.Println("✅")
	c := a.registry.Counts()
	debug.Log("🔍 Catalog: %d manual, %d web, %d system, %d media, %d discovered\n",
		c.Manual, c.Web, c.System, c.Media, c.Discovered)

	// Speech recognizer
	fmt.Print("🎤 Preparing speech recognizer... ")
	listener, err := listen.New(listen.Config{
		Backend: listen.BackendAuto,
		Command: a.config.ListenerCommand,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("listener init: %w", err)
	}
	a.listener = listener
	fmt.Println("✅")

	// Speech synthesizer
	fmt.Print("🔊 Preparing speech synthesizer... ")
	engine, err := tts.New(tts.DefaultConfig(), a.logger)
	if err != nil {
		return fmt.Errorf("speech init: %w", err)
	}
	a.engine = engine
	a.speaker = tts.NewSpeaker(engine,
		tts.WithLogger(a.logger),
		tts.WithTranscript(func(text, lang string) {
			a.notifyLog(text, protocol.RoleAI, lang)
		}),
	)
	fmt.Println("✅")

	// Dashboard surfaces
	a.webServer = web.NewServer(a.config.Port, a.logger)
	a.controlHub = control.NewHub(a.logger)
	a.controlHub.RegisterRoutes(a.webServer.App())
	a.wireSurfaces()

	return nil
}

// buildProvider connects the model backend. With a fallback endpoint
// configured, the two clients form a chain tried in order.
func (a *App) buildProvider() (inference.Provider, error) {
	primary, err := inference.NewClient(
		inference.WithBaseURL(a.config.OllamaURL),
		inference.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	if a.config.OllamaFallbackURL == "" {
		return primary, nil
	}

	fallback, err := inference.NewClient(
		inference.WithBaseURL(a.config.OllamaFallbackURL),
		inference.WithLogger(a.logger),
	)
	if err != nil {
		primary.Close()
		return nil, err
	}
	return inference.NewChainWithLogger(a.logger, primary, fallback)
}

// wireSurfaces connects the dashboard and control channel callbacks to the
// session. The control channel handler forks a goroutine so a slow model
// call never stalls its read loop.
func (a *App) wireSurfaces() {
	a.webServer.OnCommand = func(text string) {
		a.HandleCommand(context.Background(), text, a.Language())
	}
	a.webServer.OnListening = func(enabled bool) {
		a.SetListening(enabled)
	}
	a.webServer.OnLanguage = func(language string) {
		_ = a.SetLanguage(language)
	}
	a.webServer.OnStatus = func() protocol.StateData {
		return a.Status(context.Background())
	}
	a.webServer.OnCapabilities = func() map[string]int {
		return a.capabilityCounts()
	}

	a.controlHub.OnUserMessage(func(clientID, text string) {
		go a.HandleCommand(context.Background(), text, a.Language())
	})
	a.controlHub.OnToggleListening(func(clientID string, enabled *bool) {
		next := !a.Listening()
		if enabled != nil {
			next = *enabled
		}
		a.SetListening(next)
	})
	a.controlHub.OnChangeLanguage(func(clientID, language string) {
		if err := a.SetLanguage(language); err != nil {
			_ = a.controlHub.SendStatus(clientID, fmt.Sprintf("Unsupported language: %s", language))
		}
	})
	a.controlHub.OnGetStatus(func(clientID string) {
		_ = a.controlHub.SendState(clientID, a.Status(context.Background()))
	})
}

// Run starts the speech worker, the dashboard server, and the listening
// loop. Blocks until context is cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Println("\n🎤 Pluto is listening! Say 'Pluto' or 'Ghost' to activate...")
	fmt.Println("   (Ctrl+C to exit)")

	a.speaker.Start(ctx)
	a.webServer.StartAsync()
	go a.listenLoop(ctx)

	<-ctx.Done()
	return nil
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	fmt.Println("\n👋 Goodbye!")

	if a.listener != nil {
		_ = a.listener.Close()
	}
	if a.engine != nil {
		_ = a.engine.Close()
	}
	if a.provider != nil {
		_ = a.provider.Close()
	}
	if a.webServer != nil {
		_ = a.webServer.Shutdown()
	}
}

// Listening reports whether the microphone loop is active.
func (a *App) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// SetListening toggles the microphone loop and announces the change.
// In-flight work always runs to completion.
func (a *App) SetListening(enabled bool) {
	a.mu.Lock()
	changed := a.listening != enabled
	a.listening = enabled
	a.mu.Unlock()

	if !changed {
		return
	}
	if enabled {
		a.notifyStatus(statusListenOn)
	} else {
		a.notifyStatus(statusListenOff)
	}
	a.logger.Info("listening toggled", "enabled", enabled)
}

// Language returns the current session response language.
func (a *App) Language() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.language
}

// SetLanguage switches the session language and announces the change.
func (a *App) SetLanguage(lang string) error {
	name, ok := languageNames[lang]
	if !ok {
		return fmt.Errorf("pluto: unsupported language %q", lang)
	}
	a.setLanguage(lang)
	a.notifyStatus("🌐 Language: " + name)
	return nil
}

// setLanguage updates the session language without an announcement. The
// listen loop calls this on every tagged utterance.
func (a *App) setLanguage(lang string) {
	a.mu.Lock()
	a.language = lang
	a.mu.Unlock()
}

// Status assembles the state snapshot served to the dashboards.
func (a *App) Status(ctx context.Context) protocol.StateData {
	return protocol.StateData{
		Listening:        a.Listening(),
		Language:         a.Language(),
		Online:           a.Online(),
		AvailableModels:  a.classifier.AvailableModels(ctx),
		CapabilityCounts: a.capabilityCounts(),
		HasGeneratedCode: a.classifier.HasCode(),
	}
}

func (a *App) capabilityCounts() map[string]int {
	c := a.registry.Counts()
	return map[string]int{
		"manual":     c.Manual,
		"web":        c.Web,
		"system":     c.System,
		"media":      c.Media,
		"discovered": c.Discovered,
	}
}

// Online reports internet reachability, probed at most once per TTL.
func (a *App) Online() bool {
	a.probeMu.Lock()
	defer a.probeMu.Unlock()

	if time.Since(a.probeAt) < onlineProbeTTL {
		return a.probeOnline
	}

	a.probeOnline = a.dial(primaryProbeAddr, primaryProbeWait) == nil ||
		a.dial(fallbackProbeAddr, fallbackProbeWait) == nil
	a.probeAt = time.Now()
	return a.probeOnline
}

func dialProbe(addr string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}

// speak queues one spoken line. The matching transcript event is emitted by
// the speaker just before synthesis starts.
func (a *App) speak(text, lang string) {
	if a.speaker != nil {
		a.speaker.Say(text, lang)
	}
}

// sayReply speaks one bilingual response, formatted when args are given.
func (a *App) sayReply(r reply, lang string, args ...interface{}) {
	text := r.pick(lang)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	a.speak(text, lang)
}

// notifyLog pushes one transcript event to both dashboards.
func (a *App) notifyLog(text, role, lang string) {
	if a.webServer != nil {
		a.webServer.PushLog(text, role, lang)
	}
	if a.controlHub != nil {
		if msg, err := protocol.NewLogMessage(uuid.NewString(), text, role, lang); err == nil {
			a.controlHub.Broadcast(msg)
		}
	}
}

// notifyStatus pushes one status line to both dashboards.
func (a *App) notifyStatus(text string) {
	if a.webServer != nil {
		a.webServer.PushStatus(text)
	}
	if a.controlHub != nil {
		if msg, err := protocol.NewStatusMessage(text); err == nil {
			a.controlHub.Broadcast(msg)
		}
	}
}
