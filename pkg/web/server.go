// Package web serves the daemon's REST API and the one-way push websockets
// (/ws/logs, /ws/status) that feed the dashboard transcript. It holds the
// transcript ring; command handling itself lives in pkg/pluto and is reached
// through callback fields.
package web

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/plutovoice/go-pluto/pkg/hub"
	"github.com/plutovoice/go-pluto/pkg/protocol"
)

// Server is the dashboard-facing HTTP server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	transcript *Transcript

	statusHub *hub.Hub
	logHub    *hub.Hub

	// OnCommand receives typed commands from POST /api/command. Runs on its
	// own goroutine per command.
	OnCommand func(text string)

	// OnListening receives explicit listening toggles.
	OnListening func(enabled bool)

	// OnLanguage receives a validated language switch ("en" or "ta").
	OnLanguage func(language string)

	// OnStatus builds the current state snapshot.
	OnStatus func() protocol.StateData

	// OnCapabilities reports capability counts per kind.
	OnCapabilities func() map[string]int
}

// NewServer creates the dashboard server on the given port.
func NewServer(port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:       port,
		logger:     logger,
		transcript: NewTranscript(TranscriptLimit),
		statusHub:  hub.New("status", logger),
		logHub:     hub.New("logs", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Pluto Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/transcript", s.handleTranscript)
	api.Get("/capabilities", s.handleCapabilities)
	api.Post("/command", s.handleCommand)
	api.Post("/listening", s.handleListening)
	api.Post("/language", s.handleLanguage)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/logs", websocket.New(s.handleLogsWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// App exposes the underlying Fiber app so the control hub can attach its
// routes and tests can drive requests directly.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hubs and serves until Shutdown.
func (s *Server) Start() error {
	fmt.Printf("🌐 Web interface: http://localhost:%s\n", s.port)

	go s.statusHub.Run()
	go s.logHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PushLog stores one transcript line and broadcasts it to log clients.
func (s *Server) PushLog(text, role, language string) {
	entry := protocol.LogData{
		ID:       uuid.NewString(),
		Data:     text,
		Role:     role,
		Language: language,
	}

	msg, err := protocol.NewMessage(protocol.TypeLog, entry)
	if err != nil {
		s.logger.Error("encode transcript line", "error", err)
		return
	}

	s.transcript.Add(TranscriptEntry{LogData: entry, Timestamp: msg.Timestamp})

	data, err := msg.Bytes()
	if err != nil {
		s.logger.Error("encode transcript line", "error", err)
		return
	}
	s.logHub.Broadcast(data)
}

// PushStatus broadcasts a status banner to status clients.
func (s *Server) PushStatus(text string) {
	msg, err := protocol.NewStatusMessage(text)
	if err != nil {
		s.logger.Error("encode status banner", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		s.logger.Error("encode status banner", "error", err)
		return
	}
	s.statusHub.Broadcast(data)
}

// PushState broadcasts a state snapshot to status clients.
func (s *Server) PushState(state protocol.StateData) {
	msg, err := protocol.NewStateMessage(state)
	if err != nil {
		s.logger.Error("encode state snapshot", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		s.logger.Error("encode state snapshot", "error", err)
		return
	}
	s.statusHub.Broadcast(data)
}

// Transcript returns the transcript buffer.
func (s *Server) Transcript() *Transcript {
	return s.transcript
}
