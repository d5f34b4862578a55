// ABOUTME: Test tone generator, encoded to SEA on the fly for streaming without a file
// ABOUTME: Default source when no .sea file path is given to the server
package seastream

import (
	"math"

	"github.com/seacodec/sea-go/pkg/sea"
)

// DefaultSampleRate and DefaultChannels describe the test tone's format.
const (
	DefaultSampleRate = 44100
	DefaultChannels   = 1
	testToneFreqHz    = 440.0 // A4
	testToneSeconds   = 10
)

// NewTestToneChunkSource generates a 440Hz sine wave, encodes it with
// the given quality tier, and returns it as a streamable ChunkSource.
func NewTestToneChunkSource(quality int, mode sea.Mode) (ChunkSource, error) {
	frames := DefaultSampleRate * testToneSeconds
	samples := make([]int16, frames)
	for i := range samples {
		t := float64(i) / float64(DefaultSampleRate)
		samples[i] = int16(0.5 * 32767.0 * math.Sin(2*math.Pi*testToneFreqHz*t))
	}

	params := sea.ParamsForQuality(quality, mode)
	metadata, _ := sea.EncodeMetadata(map[string]string{"title": "Test Tone 440Hz"})

	data, err := sea.Encode(samples, DefaultSampleRate, DefaultChannels, params, metadata)
	if err != nil {
		return nil, err
	}
	return NewMemoryChunkSource(data)
}
