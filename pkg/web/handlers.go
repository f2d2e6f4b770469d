package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/plutovoice/go-pluto/pkg/hub"
	"github.com/plutovoice/go-pluto/pkg/protocol"
)

// handleStatus returns the current state snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	if s.OnStatus == nil {
		return c.JSON(protocol.StateData{})
	}
	return c.JSON(s.OnStatus())
}

// handleTranscript returns the stored transcript, oldest first.
func (s *Server) handleTranscript(c *fiber.Ctx) error {
	return c.JSON(s.transcript.Entries())
}

// handleCapabilities returns capability counts per kind.
func (s *Server) handleCapabilities(c *fiber.Ctx) error {
	if s.OnCapabilities == nil {
		return c.JSON(map[string]int{})
	}
	return c.JSON(s.OnCapabilities())
}

// CommandRequest is the body for POST /api/command.
type CommandRequest struct {
	Text string `json:"text"`
}

// handleCommand accepts a typed command and hands it to the assistant. The
// reply arrives over the push websockets, not this response.
func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.Status(400).JSON(fiber.Map{"error": "text is required"})
	}

	if s.OnCommand == nil {
		return c.Status(500).JSON(fiber.Map{"error": "command handling not configured"})
	}

	go s.OnCommand(text)

	return c.JSON(fiber.Map{"status": "accepted"})
}

// ListeningRequest is the body for POST /api/listening.
type ListeningRequest struct {
	Enabled *bool `json:"enabled"`
}

// handleListening sets the listening flag.
func (s *Server) handleListening(c *fiber.Ctx) error {
	var req ListeningRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Enabled == nil {
		return c.Status(400).JSON(fiber.Map{"error": "enabled is required"})
	}

	if s.OnListening == nil {
		return c.Status(500).JSON(fiber.Map{"error": "listening control not configured"})
	}

	s.OnListening(*req.Enabled)

	return c.JSON(fiber.Map{"listening": *req.Enabled})
}

// LanguageRequest is the body for POST /api/language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// handleLanguage switches the response language.
func (s *Server) handleLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Language != "en" && req.Language != "ta" {
		return c.Status(400).JSON(fiber.Map{"error": "language must be en or ta"})
	}

	if s.OnLanguage == nil {
		return c.Status(500).JSON(fiber.Map{"error": "language control not configured"})
	}

	s.OnLanguage(req.Language)

	return c.JSON(fiber.Map{"language": req.Language})
}

// handleLogsWS streams transcript lines. New clients get the stored backlog
// first, then join the live broadcast.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	for _, entry := range s.transcript.Entries() {
		msg, err := entry.Message()
		if err != nil {
			continue
		}
		data, err := msg.Bytes()
		if err != nil {
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			return
		}
	}

	client := hub.NewClient(s.logHub, c)
	client.Run()
}

// handleStatusWS streams status banners and state snapshots. New clients get
// the current snapshot first.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	if s.OnStatus != nil {
		if msg, err := protocol.NewStateMessage(s.OnStatus()); err == nil {
			if data, err := msg.Bytes(); err == nil {
				if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
					c.Close()
					return
				}
			}
		}
	}

	client := hub.NewClient(s.statusHub, c)
	client.Run()
}
