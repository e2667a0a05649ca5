package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	EventEntryCreated = "entry.created"
	EventEntryUpdated = "entry.updated"
	EventEntryDeleted = "entry.deleted"
)

// Event is pushed to every open socket of the entry owner.
type Event struct {
	Kind  string    `json:"kind"`
	Entry EntryView `json:"entry"`
	At    time.Time `json:"at"`
}

// EventPublisher receives entry change notifications.
type EventPublisher interface {
	Publish(userID uint, ev Event)
}

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

// wsConn is the part of *websocket.Conn the hub uses.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type WSClient struct {
	UserID uint
	conn   wsConn
	mu     sync.Mutex // gorilla connections allow one concurrent writer

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewWSClient(userID uint, conn wsConn) *WSClient {
	return &WSClient{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Write sends one frame, giving up after writeWait.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *WSClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
	log     zerolog.Logger
}

func NewRealtimeHub(log zerolog.Logger) *RealtimeHub {
	return &RealtimeHub{
		clients: make(map[uint]map[*WSClient]struct{}),
		log:     log.With().Str("component", "realtime").Logger(),
	}
}

// Register adds the client and starts its writer.
func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// Connections returns the number of open sockets for a user.
func (h *RealtimeHub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish queues ev for every socket of userID and never blocks. A client
// whose queue is full is dropped.
func (h *RealtimeHub) Publish(userID uint, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("kind", ev.Kind).Msg("marshal event")
		return
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Uint("user_id", userID).Msg("websocket send queue full, dropping client")
			h.Unregister(c)
		}
	}
}

func (h *RealtimeHub) writeLoop(c *WSClient) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.Write(websocket.TextMessage, msg); err != nil {
				h.log.Warn().Err(err).Uint("user_id", c.UserID).Msg("drop websocket client")
				h.Unregister(c)
				return
			}
		}
	}
}
