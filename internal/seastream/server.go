// ABOUTME: Server implementation: manages WebSocket connections and streams SEA chunks
// ABOUTME: One chunk pacer goroutine fans raw chunk bytes out to every connected client
package seastream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/seacodec/sea-go/pkg/sea"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port       int
	Name       string
	EnableMDNS bool
	UseTUI     bool
	Quality    int     // 1..8, test-tone quality tier when AudioFile is empty
	Mode       string  // "cbr" or "vbr"
	AudioFile  string  // path to a .sea file to stream; empty = test tone
}

// Server streams a SEA chunk source to any number of connected clients.
type Server struct {
	config   ServerConfig
	serverID string

	upgrader   websocket.Upgrader
	httpServer *http.Server
	mux        *http.ServeMux

	source ChunkSource

	clients   map[string]*ConnectedClient
	clientsMu sync.RWMutex

	discovery *Discovery
	tui       *ServerTUI
	startTime time.Time

	stopChan   chan struct{}
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	wg         sync.WaitGroup
}

// ConnectedClient is one live websocket connection receiving the stream.
type ConnectedClient struct {
	ID       string
	Name     string
	Conn     *websocket.Conn
	sendChan chan interface{}

	mu     sync.RWMutex
	State  string
	Volume int
}

// New creates a server instance. The chunk source isn't opened until Start.
func New(config ServerConfig) *Server {
	return &Server{
		config: config,
		serverID: uuid.New().String(),
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[string]*ConnectedClient),
		startTime: time.Now(),
		stopChan:  make(chan struct{}),
	}
}

func (s *Server) openSource() (ChunkSource, error) {
	if s.config.AudioFile != "" {
		return NewFileChunkSource(s.config.AudioFile)
	}
	mode := modeFromString(s.config.Mode)
	return NewTestToneChunkSource(s.config.Quality, mode)
}

// Start opens the chunk source, begins streaming, and blocks until the
// server is stopped (via Stop, the TUI's quit key, or an HTTP error).
func (s *Server) Start() error {
	source, err := s.openSource()
	if err != nil {
		return fmt.Errorf("seastream: opening source: %w", err)
	}
	s.source = source

	if s.config.UseTUI {
		s.tui = NewServerTUI(s.config.Name, s.config.Port)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.tui.Start()
		}()
		time.Sleep(100 * time.Millisecond)
	}

	log.Printf("seastream: server starting: %s (ID: %s)", s.config.Name, s.serverID)

	if s.config.EnableMDNS {
		s.discovery = NewDiscovery(DiscoveryConfig{ServiceName: s.config.Name, Port: s.config.Port, ServerMode: true})
		if err := s.discovery.Advertise(); err != nil {
			log.Printf("seastream: mDNS advertise failed: %v", err)
		}
	}

	s.mux.HandleFunc("/sea", s.handleWebSocket)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pumpChunks()
	}()

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("seastream: listening on %s", addr)
	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	var tuiQuit <-chan struct{}
	if s.tui != nil {
		tuiQuit = s.tui.QuitChan()
	}

	select {
	case <-s.stopChan:
		log.Printf("seastream: shutting down")
	case <-tuiQuit:
		log.Printf("seastream: TUI quit requested")
	case err := <-errChan:
		log.Printf("seastream: HTTP error: %v", err)
		serverErr = err
	}

	s.shutdownMu.Lock()
	s.isShutdown = true
	s.shutdownMu.Unlock()

	if s.tui != nil {
		s.tui.Stop()
	}
	if s.discovery != nil {
		s.discovery.Stop()
	}
	s.source.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("seastream: shutdown error: %v", err)
	}

	s.wg.Wait()
	log.Printf("seastream: stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("seastream: http server failed: %w", serverErr)
	}
	return nil
}

// Stop signals Start to begin shutdown.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// pumpChunks reads chunks from the source at the stream's real-time
// rate and fans each one out to every connected client.
func (s *Server) pumpChunks() {
	header := s.source.Header()
	chunkDuration := time.Duration(float64(header.FramesPerChunk) / float64(header.SampleRate) * float64(time.Second))
	ticker := time.NewTicker(chunkDuration)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
		}

		chunk, err := s.source.Next()
		if err == io.EOF {
			log.Printf("seastream: source exhausted")
			return
		}
		if err != nil {
			log.Printf("seastream: source error: %v", err)
			return
		}

		s.clientsMu.RLock()
		for _, c := range s.clients {
			s.sendBinary(c, chunk)
		}
		s.clientsMu.RUnlock()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("seastream: upgrade error: %v", err)
		return
	}
	log.Printf("seastream: new connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.shutdownMu.RLock()
	shuttingDown := s.isShutdown
	s.shutdownMu.RUnlock()
	if shuttingDown {
		log.Printf("seastream: rejecting connection during shutdown")
		return
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("seastream: error reading hello: %v", err)
		return
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Type != "client/hello" {
		log.Printf("seastream: expected client/hello, got type=%q err=%v", env.Type, err)
		return
	}
	payloadBytes, _ := json.Marshal(env.Payload)
	var hello ClientHello
	if err := json.Unmarshal(payloadBytes, &hello); err != nil || hello.ClientID == "" {
		log.Printf("seastream: malformed client/hello")
		return
	}

	client := &ConnectedClient{ID: hello.ClientID, Name: hello.Name, Conn: conn, sendChan: make(chan interface{}, 100), State: "idle", Volume: 100}

	s.clientsMu.Lock()
	if _, exists := s.clients[client.ID]; exists {
		s.clientsMu.Unlock()
		log.Printf("seastream: rejecting duplicate client id %s", client.ID)
		return
	}
	s.clients[client.ID] = client
	s.clientsMu.Unlock()
	s.updateTUI()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, client.ID)
		s.clientsMu.Unlock()
		close(client.sendChan)
		log.Printf("seastream: client disconnected: %s", client.Name)
		s.updateTUI()
	}()

	header := s.source.Header()
	hello2 := ServerHello{
		ServerID:       s.serverID,
		Name:           s.config.Name,
		SampleRate:     header.SampleRate,
		Channels:       header.Channels,
		ChunkSize:      header.ChunkSize,
		FramesPerChunk: header.FramesPerChunk,
		Metadata:       s.source.Metadata(),
	}
	if err := s.sendJSON(client, "server/hello", hello2); err != nil {
		log.Printf("seastream: error sending server/hello: %v", err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clientWriter(client)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("seastream: websocket error: %v", err)
			}
			break
		}
		s.handleClientMessage(client, data)
	}
}

func (s *Server) clientWriter(client *ConnectedClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	const writeDeadline = 10 * time.Second

	for {
		select {
		case msg, ok := <-client.sendChan:
			if !ok {
				return
			}
			client.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			switch v := msg.(type) {
			case []byte:
				if err := client.Conn.WriteMessage(websocket.BinaryMessage, v); err != nil {
					log.Printf("seastream: error writing binary message: %v", err)
					return
				}
			default:
				data, err := json.Marshal(v)
				if err != nil {
					log.Printf("seastream: error marshaling message: %v", err)
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					log.Printf("seastream: error writing text message: %v", err)
					return
				}
			}
		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleClientMessage(client *ConnectedClient, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("seastream: error unmarshaling message: %v", err)
		return
	}
	if env.Type != "player/update" {
		log.Printf("seastream: unknown message type: %s", env.Type)
		return
	}

	payloadBytes, _ := json.Marshal(env.Payload)
	var state ClientState
	if err := json.Unmarshal(payloadBytes, &state); err != nil {
		log.Printf("seastream: error unmarshaling client state: %v", err)
		return
	}

	client.mu.Lock()
	client.State = state.State
	client.Volume = state.Volume
	client.mu.Unlock()
	log.Printf("seastream: client %s state: %s (vol: %d)", client.Name, state.State, state.Volume)
}

func (s *Server) sendJSON(client *ConnectedClient, msgType string, payload interface{}) error {
	select {
	case client.sendChan <- Envelope{Type: msgType, Payload: payload}:
		return nil
	default:
		return fmt.Errorf("client send buffer full")
	}
}

func (s *Server) sendBinary(client *ConnectedClient, data []byte) {
	select {
	case client.sendChan <- data:
	default:
		log.Printf("seastream: client %s send buffer full, dropping chunk", client.Name)
	}
}

func modeFromString(m string) sea.Mode {
	if m == "vbr" {
		return sea.VBR
	}
	return sea.CBR
}

func (s *Server) updateTUI() {
	if s.tui == nil {
		return
	}
	s.clientsMu.RLock()
	names := make([]string, 0, len(s.clients))
	for _, c := range s.clients {
		names = append(names, c.Name)
	}
	s.clientsMu.RUnlock()
	s.tui.SetClients(names)
}
