// ABOUTME: WAV RIFF/fmt/data chunk layout for 16-bit PCM
// ABOUTME: Mirrors e-mu-soundbanks's internal/wav.WAVHeader field-for-field
package wavfile

import "errors"

// Header is the canonical 44-byte PCM WAV header: RIFF, fmt, and data
// chunk descriptors with no extra chunks in between.
type Header struct {
	RiffID   [4]byte // "RIFF"
	FileSize uint32  // 4 + (8 + FmtSize) + (8 + DataSize)
	WaveID   [4]byte // "WAVE"

	FmtID         [4]byte // "fmt "
	FmtSize       uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample/8
	BlockAlign    uint16 // NumChannels * BitsPerSample/8
	BitsPerSample uint16 // always 16 here

	DataID   [4]byte // "data"
	DataSize uint32  // len(samples) * 2, samples interleaved across channels
}

// ErrNotPCM16 is returned when a WAV file isn't 16-bit integer PCM, the
// only format pkg/sea's core consumes.
var ErrNotPCM16 = errors.New("wavfile: not a 16-bit PCM WAV file")

// ErrBadRIFF is returned when the RIFF/WAVE/fmt/data chunk IDs don't
// match what a canonical PCM WAV file contains.
var ErrBadRIFF = errors.New("wavfile: not a RIFF/WAVE file")
