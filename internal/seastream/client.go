// ABOUTME: WebSocket client for SEA stream communication
// ABOUTME: Performs the handshake, then routes incoming binary chunk frames and control JSON
package seastream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConfig holds client configuration.
type ClientConfig struct {
	ServerAddr string
	ClientID   string
	Name       string
}

// Client is a WebSocket client that receives a SEA chunk stream.
type Client struct {
	config ClientConfig
	conn   *websocket.Conn
	mu     sync.RWMutex

	Chunks      chan []byte
	ControlMsgs chan ServerCommand
	Hello       chan ServerHello

	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClient creates a WebSocket client.
func NewClient(config ClientConfig) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config:      config,
		Chunks:      make(chan []byte, 64),
		ControlMsgs: make(chan ServerCommand, 10),
		Hello:       make(chan ServerHello, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Connect dials the server, performs the handshake, and starts the
// background message reader.
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: "/sea"}
	log.Printf("seastream: connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("seastream: dial: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	if err := c.handshake(); err != nil {
		c.Close()
		return fmt.Errorf("seastream: handshake: %w", err)
	}

	go c.readLoop()
	return nil
}

func (c *Client) handshake() error {
	hello := ClientHello{ClientID: c.config.ClientID, Name: c.config.Name}
	if err := c.sendEnvelope("client/hello", hello); err != nil {
		return fmt.Errorf("send client/hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read server/hello: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("parse server/hello: %w", err)
	}
	if env.Type != "server/hello" {
		return fmt.Errorf("expected server/hello, got %s", env.Type)
	}

	payloadBytes, _ := json.Marshal(env.Payload)
	var serverHello ServerHello
	if err := json.Unmarshal(payloadBytes, &serverHello); err != nil {
		return fmt.Errorf("decode server/hello payload: %w", err)
	}

	select {
	case c.Hello <- serverHello:
	default:
	}

	log.Printf("seastream: handshake complete, %d Hz %d ch", serverHello.SampleRate, serverHello.Channels)
	return c.sendEnvelope("player/update", ClientState{State: "idle", Volume: 100})
}

func (c *Client) sendEnvelope(typ string, payload interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(Envelope{Type: typ, Payload: payload})
}

func (c *Client) readLoop() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("seastream: read error: %v", err)
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			chunk := make([]byte, len(data))
			copy(chunk, data)
			select {
			case c.Chunks <- chunk:
			case <-c.ctx.Done():
			}
		case websocket.TextMessage:
			c.handleControl(data)
		}
	}
}

func (c *Client) handleControl(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("seastream: bad control message: %v", err)
		return
	}

	if env.Type != "server/command" {
		log.Printf("seastream: unexpected control message type %q", env.Type)
		return
	}

	payloadBytes, _ := json.Marshal(env.Payload)
	var cmd ServerCommand
	if err := json.Unmarshal(payloadBytes, &cmd); err != nil {
		log.Printf("seastream: bad server/command payload: %v", err)
		return
	}
	select {
	case c.ControlMsgs <- cmd:
	case <-c.ctx.Done():
	}
}

// SendState reports playback state to the server.
func (c *Client) SendState(state ClientState) error {
	return c.sendEnvelope("player/update", state)
}

// Close tears down the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		c.connected = false
		c.cancel()
		c.conn.Close()
		log.Printf("seastream: connection closed")
	}
}

// IsConnected reports whether the client currently holds an open connection.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}
