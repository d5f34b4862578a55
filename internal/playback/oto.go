// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams decoded int16 PCM through a persistent oto player with software volume
package playback

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"
)

// Oto plays int16 PCM through the ebitengine/oto output backend.
type Oto struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	ready      bool
}

// NewOto creates an Oto output. Open must be called before Write.
func NewOto() Output {
	ctx, cancel := context.WithCancel(context.Background())
	return &Oto{ctx: ctx, cancel: cancel, volume: 100}
}

// Open initializes the output device for the given format. oto allows
// only one context per process, so a second Open with a different
// format logs a warning and keeps using the original context.
func (o *Oto) Open(sampleRate, channels int) error {
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		return nil
	}
	if o.otoCtx != nil {
		log.Printf("playback: format change (%dHz %dch -> %dHz %dch) ignored, oto context already initialized",
			o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("playback: create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	log.Printf("playback: output initialized at %dHz, %d channel(s)", sampleRate, channels)
	return nil
}

// Write outputs audio samples, applying volume, blocking until written.
func (o *Oto) Write(samples []int16) error {
	if !o.ready {
		return fmt.Errorf("playback: output not initialized")
	}

	scaled := applyVolume(samples, o.volume)

	out := make([]byte, len(scaled)*2)
	for i, s := range scaled {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	if _, err := o.pipeWriter.Write(out); err != nil {
		return fmt.Errorf("playback: pipe write: %w", err)
	}
	return nil
}

// SetVolume sets the volume (0-100).
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
}

// Close releases output resources.
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	o.cancel()
	return nil
}

func applyVolume(samples []int16, volume int) []int16 {
	if volume == 100 {
		return samples
	}
	mult := float64(volume) / 100.0
	out := make([]int16, len(samples))
	for i, s := range samples {
		scaled := int32(float64(s) * mult)
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}
		out[i] = int16(scaled)
	}
	return out
}
