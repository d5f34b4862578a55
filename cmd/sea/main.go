// ABOUTME: Entry point for the sea encode/decode/play CLI
// ABOUTME: Wraps pkg/sea and internal/wavfile for command-line use
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seacodec/sea-go/internal/playback"
	"github.com/seacodec/sea-go/internal/wavfile"
	"github.com/seacodec/sea-go/pkg/sea"
)

var (
	encodeFlag = flag.Bool("encode", false, "Encode the input WAV file to SEA")
	decodeFlag = flag.Bool("decode", false, "Decode the input SEA file to WAV")
	play       = flag.Bool("play", false, "Play the decoded audio through local output")
	quality    = flag.Int("quality", 4, "Encode quality, 1-8 (higher = better fidelity, larger output)")
	mode       = flag.String("mode", "cbr", "Encode mode: cbr or vbr")
	targetBps  = flag.Float64("target-bps", 0, "VBR target bits/sample (0 = unbiased)")
	quiet      = flag.Bool("quiet", false, "Suppress the progress display")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s -encode input.wav output.sea\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -decode input.sea output.wav\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -decode -play input.sea\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	switch {
	case *encodeFlag:
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		if err := runEncode(args[0], args[1]); err != nil {
			log.Fatalf("encode: %v", err)
		}
	case *decodeFlag:
		if *play {
			if len(args) != 1 {
				usage()
				os.Exit(2)
			}
			if err := runDecodePlay(args[0]); err != nil {
				log.Fatalf("decode: %v", err)
			}
			return
		}
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		if err := runDecode(args[0], args[1]); err != nil {
			log.Fatalf("decode: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func runEncode(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	samples, sampleRate, channels, err := wavfile.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read wav: %w", err)
	}

	m := sea.CBR
	if *mode == "vbr" {
		m = sea.VBR
	}
	params := sea.ParamsForQuality(*quality, m)
	if *targetBps > 0 {
		params.VBRTargetBps = float32(*targetBps)
	}
	metadata, err := sea.EncodeMetadata(sea.DefaultMetadata("sea-cli"))
	if err != nil {
		return err
	}

	stop := progress(fmt.Sprintf("encoding %s", inPath))
	data, err := sea.Encode(samples, sampleRate, uint8(channels), params, metadata)
	stop()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d bytes, %.2f bits/sample)\n", outPath, len(data), bitsPerSample(len(data), len(samples)))
	return nil
}

func runDecode(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	stop := progress(fmt.Sprintf("decoding %s", inPath))
	result, err := sea.Decode(data)
	stop()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := wavfile.Write(out, result.Samples, result.SampleRate, uint16(result.Channels)); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	fmt.Printf("wrote %s (%d frames, %dHz, %d channel(s))\n", outPath, result.Frames, result.SampleRate, result.Channels)
	return nil
}

func runDecodePlay(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	result, err := sea.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out := playback.NewOto()
	if err := out.Open(int(result.SampleRate), int(result.Channels)); err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}
	defer out.Close()

	fmt.Printf("playing %s (%dHz, %d channel(s))\n", inPath, result.SampleRate, result.Channels)
	return out.Write(result.Samples)
}

func bitsPerSample(encodedBytes, totalSamples int) float64 {
	if totalSamples == 0 {
		return 0
	}
	return float64(encodedBytes*8) / float64(totalSamples)
}

// progress shows a short-lived bubbletea spinner while an encode or
// decode runs, returning a func to stop it once the work is done.
func progress(label string) func() {
	if *quiet {
		return func() {}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	m := spinnerModel{label: label, style: style}
	p := tea.NewProgram(m)

	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	return func() {
		p.Send(spinnerDoneMsg{})
		<-done
	}
}

type spinnerModel struct {
	label string
	frame int
	style lipgloss.Style
	done  bool
}

type spinnerTickMsg struct{}
type spinnerDoneMsg struct{}

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"|", "/", "-", "\\"}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case spinnerTickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.style.Render(spinnerFrames[m.frame%len(spinnerFrames)]) + " " + m.label + "\n"
}
