// ABOUTME: Entry point for the SEA stream server and client
// ABOUTME: Parses CLI flags and dispatches to serve or connect mode
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/seacodec/sea-go/internal/chunkcodec"
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
	"github.com/seacodec/sea-go/internal/playback"
	"github.com/seacodec/sea-go/internal/seastream"
)

var (
	mode = flag.String("mode", "serve", "Operating mode: serve or connect")

	port      = flag.Int("port", 8927, "WebSocket server port (serve mode)")
	name      = flag.String("name", "", "Server friendly name (serve mode; default: hostname-sea-server)")
	logFile   = flag.String("log-file", "sea-stream.log", "Log file path")
	noMDNS    = flag.Bool("no-mdns", false, "Disable mDNS advertisement (serve mode)")
	noTUI     = flag.Bool("no-tui", false, "Disable the terminal status display (serve mode)")
	audioFile = flag.String("audio", "", "SEA file to stream (serve mode). If not specified, streams a test tone")
	quality   = flag.Int("quality", 4, "Test-tone encode quality, 1-8 (serve mode, ignored with -audio)")
	encMode   = flag.String("enc-mode", "cbr", "Test-tone encode mode: cbr or vbr (serve mode, ignored with -audio)")

	server = flag.String("server", "localhost:8927", "Server address to connect to (connect mode)")
	play   = flag.Bool("play", false, "Play the received stream through local audio output (connect mode)")
)

func main() {
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()
	log.SetOutput(io.MultiWriter(os.Stdout, f))

	switch *mode {
	case "serve":
		runServer()
	case "connect":
		runClient()
	default:
		log.Fatalf("unknown -mode %q, expected serve or connect", *mode)
	}
}

func runServer() {
	serverName := *name
	if serverName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serverName = fmt.Sprintf("%s-sea-server", hostname)
	}

	log.Printf("starting SEA stream server: %s on port %d", serverName, *port)

	config := seastream.ServerConfig{
		Port:       *port,
		Name:       serverName,
		EnableMDNS: !*noMDNS,
		UseTUI:     !*noTUI,
		Quality:    *quality,
		Mode:       *encMode,
		AudioFile:  *audioFile,
	}

	srv := seastream.New(config)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received %v, shutting down gracefully...", sig)
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("server stopped")
}

func runClient() {
	clientID := fmt.Sprintf("sea-stream-client-%d", os.Getpid())
	client := seastream.NewClient(seastream.ClientConfig{
		ServerAddr: *server,
		ClientID:   clientID,
		Name:       "sea-stream CLI",
	})

	if err := client.Connect(); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Close()

	var out playback.Output
	if *play {
		out = playback.NewOto()
	}

	cache := dqt.NewCache()
	var channels, framesPerChunk int

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			log.Printf("interrupted, disconnecting")
			return
		case hello := <-client.Hello:
			channels = int(hello.Channels)
			framesPerChunk = int(hello.FramesPerChunk)
			log.Printf("stream format: %dHz, %d channel(s)", hello.SampleRate, channels)
			if out != nil {
				if err := out.Open(int(hello.SampleRate), channels); err != nil {
					log.Fatalf("open audio output: %v", err)
				}
			}
		case chunk, ok := <-client.Chunks:
			if !ok {
				return
			}
			if channels == 0 {
				log.Printf("received chunk before handshake, dropping")
				continue
			}
			samples, _, err := chunkcodec.Decode(chunk, channels, framesPerChunk, make([]lms.State, channels), cache)
			if err != nil {
				log.Printf("chunk decode error: %v", err)
				continue
			}
			if out != nil {
				if err := out.Write(samples); err != nil {
					log.Printf("playback write error: %v", err)
				}
			}
		case cmd := <-client.ControlMsgs:
			log.Printf("server command: %s", cmd.Command)
		}
	}
}
