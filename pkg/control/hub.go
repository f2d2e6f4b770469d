// Package control serves the bidirectional control websocket used by the
// dashboard and pluto-ctl: typed commands and toggles in, acks and state
// snapshots out. One-way transcript and status fan-out lives in pkg/web.
package control

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/plutovoice/go-pluto/pkg/protocol"
)

// Connect handshake pushed to every client.
const (
	GreetingText = "Pluto voice assistant is online!"
	ReadyStatus  = "✅ Ready - Say 'Pluto' or 'Ghost' to activate"
)

// ClientConnection represents one connected control client.
type ClientConnection struct {
	ID        string
	Conn      *websocket.Conn
	Connected time.Time
	LastSeen  time.Time

	mu sync.Mutex
}

// Send writes a message to the client. Writes are serialized per connection.
func (c *ClientConnection) Send(msg *protocol.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages control websocket connections and routes inbound commands to
// registered callbacks.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*ClientConnection
	logger  *slog.Logger

	onUserMessage     func(clientID, text string)
	onToggleListening func(clientID string, enabled *bool)
	onChangeLanguage  func(clientID, language string)
	onGetStatus       func(clientID string)

	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
}

// NewHub creates a control hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]*ClientConnection),
		logger:  logger,
	}
}

// OnUserMessage sets the callback for typed commands.
func (h *Hub) OnUserMessage(callback func(clientID, text string)) {
	h.mu.Lock()
	h.onUserMessage = callback
	h.mu.Unlock()
}

// OnToggleListening sets the callback for listening toggles. enabled is nil
// when the client asks for a plain flip.
func (h *Hub) OnToggleListening(callback func(clientID string, enabled *bool)) {
	h.mu.Lock()
	h.onToggleListening = callback
	h.mu.Unlock()
}

// OnChangeLanguage sets the callback for language switches.
func (h *Hub) OnChangeLanguage(callback func(clientID, language string)) {
	h.mu.Lock()
	h.onChangeLanguage = callback
	h.mu.Unlock()
}

// OnGetStatus sets the callback for state snapshot requests.
func (h *Hub) OnGetStatus(callback func(clientID string)) {
	h.mu.Lock()
	h.onGetStatus = callback
	h.mu.Unlock()
}

// RegisterRoutes registers the control websocket on a Fiber app.
func (h *Hub) RegisterRoutes(app *fiber.App) {
	app.Use("/ws/control", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/control", websocket.New(h.handleClient))
}

// handleClient owns one control connection from accept to read failure.
func (h *Hub) handleClient(c *websocket.Conn) {
	client := &ClientConnection{
		ID:        uuid.NewString(),
		Conn:      c,
		Connected: time.Now(),
		LastSeen:  time.Now(),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("control client connected", "id", client.ID, "total", count)

	defer func() {
		h.mu.Lock()
		delete(h.clients, client.ID)
		count := len(h.clients)
		h.mu.Unlock()
		h.logger.Info("control client disconnected", "id", client.ID, "total", count)
	}()

	h.greet(client)

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			h.logger.Debug("control read ended", "id", client.ID, "error", err)
			return
		}

		client.mu.Lock()
		client.LastSeen = time.Now()
		client.mu.Unlock()

		h.messagesReceived.Add(1)
		h.handleMessage(client, data)
	}
}

// greet sends the connect handshake: a greeting transcript line and the
// ready banner.
func (h *Hub) greet(client *ClientConnection) {
	if msg, err := protocol.NewLogMessage(uuid.NewString(), GreetingText, protocol.RoleAI, "en"); err == nil {
		h.send(client, msg)
	}
	if msg, err := protocol.NewStatusMessage(ReadyStatus); err == nil {
		h.send(client, msg)
	}
}

// handleMessage dispatches one inbound frame.
func (h *Hub) handleMessage(client *ClientConnection, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		h.logger.Debug("control parse error", "id", client.ID, "error", err)
		return
	}

	h.mu.RLock()
	userCb := h.onUserMessage
	toggleCb := h.onToggleListening
	langCb := h.onChangeLanguage
	statusCb := h.onGetStatus
	h.mu.RUnlock()

	switch msg.Type {
	case protocol.TypeUserMessage:
		if userCb == nil {
			return
		}
		if um, err := msg.GetUserMessageData(); err == nil && strings.TrimSpace(um.Data) != "" {
			userCb(client.ID, um.Data)
		}

	case protocol.TypeToggleListening:
		if toggleCb == nil {
			return
		}
		if td, err := msg.GetToggleListeningData(); err == nil {
			toggleCb(client.ID, td.Enabled)
		}

	case protocol.TypeChangeLanguage:
		if langCb == nil {
			return
		}
		if cd, err := msg.GetChangeLanguageData(); err == nil {
			langCb(client.ID, cd.Language)
		}

	case protocol.TypeGetStatus:
		if statusCb != nil {
			statusCb(client.ID)
		}

	case protocol.TypePing:
		var pingID string
		if pd, err := msg.GetPingData(); err == nil {
			pingID = pd.ID
		}
		if err := h.SendPong(client.ID, pingID, msg.Timestamp); err != nil {
			h.logger.Debug("pong failed", "id", client.ID, "error", err)
		}
	}
}

// SendLog sends one transcript line to a specific client.
func (h *Hub) SendLog(clientID, text, role, language string) error {
	msg, err := protocol.NewLogMessage(uuid.NewString(), text, role, language)
	if err != nil {
		return err
	}
	return h.sendTo(clientID, msg)
}

// SendStatus sends a status banner to a specific client.
func (h *Hub) SendStatus(clientID, text string) error {
	msg, err := protocol.NewStatusMessage(text)
	if err != nil {
		return err
	}
	return h.sendTo(clientID, msg)
}

// SendState sends a state snapshot to a specific client.
func (h *Hub) SendState(clientID string, state protocol.StateData) error {
	msg, err := protocol.NewStateMessage(state)
	if err != nil {
		return err
	}
	return h.sendTo(clientID, msg)
}

// SendPong answers a ping.
func (h *Hub) SendPong(clientID, pingID string, pingTS int64) error {
	msg, err := protocol.NewPongMessage(pingID, pingTS, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	return h.sendTo(clientID, msg)
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(msg *protocol.Message) {
	h.mu.RLock()
	clients := make([]*ClientConnection, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.messagesSent.Add(1)
		if err := client.Send(msg); err != nil {
			h.logger.Debug("control broadcast failed", "id", client.ID, "error", err)
		}
	}
}

func (h *Hub) sendTo(clientID string, msg *protocol.Message) error {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()

	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "client not connected")
	}

	h.messagesSent.Add(1)
	return client.Send(msg)
}

func (h *Hub) send(client *ClientConnection, msg *protocol.Message) {
	h.messagesSent.Add(1)
	if err := client.Send(msg); err != nil {
		h.logger.Debug("control send failed", "id", client.ID, "error", err)
	}
}

// GetClient returns a client connection by ID.
func (h *Hub) GetClient(clientID string) *ClientConnection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[clientID]
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats contains hub counters.
type Stats struct {
	ClientCount      int    `json:"client_count"`
	MessagesReceived uint64 `json:"messages_received"`
	MessagesSent     uint64 `json:"messages_sent"`
}

// GetStats returns hub counters.
func (h *Hub) GetStats() Stats {
	return Stats{
		ClientCount:      h.ClientCount(),
		MessagesReceived: h.messagesReceived.Load(),
		MessagesSent:     h.messagesSent.Load(),
	}
}
