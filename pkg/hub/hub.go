// Package hub fans dashboard events out to websocket subscribers. A single
// goroutine owns the client set; joins, leaves, and broadcasts all arrive
// over channels, so nothing holds a lock while frames are written.
package hub

import (
	"log/slog"
	"sync/atomic"
)

// broadcastBuffer bounds the pending event queue, per hub and per client.
// Transcript traffic is small text frames, so a consumer that falls this
// far behind is dropped rather than buffered without bound.
const broadcastBuffer = 256

// Hub broadcasts JSON frames to every connected subscriber.
type Hub struct {
	name   string
	logger *slog.Logger

	clients map[*Client]struct{}
	size    atomic.Int64

	broadcast chan []byte
	join      chan *Client
	leave     chan *Client
}

// New creates a hub. The name shows up in logs; each push channel of the
// dashboard gets its own hub.
func New(name string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		name:      name,
		logger:    logger,
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan []byte, broadcastBuffer),
		join:      make(chan *Client),
		leave:     make(chan *Client),
	}
}

// Run owns the client set. Start it in a goroutine before accepting
// subscribers.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.join:
			h.clients[c] = struct{}{}
			h.size.Store(int64(len(h.clients)))
			h.logger.Debug("dashboard client connected", "hub", h.name, "clients", len(h.clients))

		case c := <-h.leave:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.size.Store(int64(len(h.clients)))
			h.logger.Debug("dashboard client disconnected", "hub", h.name, "clients", len(h.clients))

		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Too far behind to ever catch up.
					delete(h.clients, c)
					close(c.send)
					h.logger.Warn("dropped slow dashboard client", "hub", h.name)
				}
			}
			h.size.Store(int64(len(h.clients)))
		}
	}
}

// Broadcast queues one frame for every subscriber. Never blocks; when the
// hub itself is backed up the frame is dropped.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn("broadcast queue full", "hub", h.name)
	}
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	return int(h.size.Load())
}
