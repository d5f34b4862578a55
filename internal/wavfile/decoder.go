// ABOUTME: Reads a 16-bit PCM WAV file into interleaved int16 samples
// ABOUTME: Walks RIFF chunks like sfz2n64's wav.Parse, skipping anything but fmt/data
package wavfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Read parses a RIFF/WAVE file from r and returns its interleaved int16
// PCM samples, sample rate, and channel count. Chunks other than "fmt "
// and "data" (e.g. "LIST", "fact") are skipped.
func Read(r io.Reader) (samples []int16, sampleRate uint32, channels uint16, err error) {
	var riffID [4]byte
	if _, err = io.ReadFull(r, riffID[:]); err != nil {
		return nil, 0, 0, ErrBadRIFF
	}
	if riffID != [4]byte{'R', 'I', 'F', 'F'} {
		return nil, 0, 0, ErrBadRIFF
	}

	var riffSize uint32
	if err = binary.Read(r, binary.LittleEndian, &riffSize); err != nil {
		return nil, 0, 0, ErrBadRIFF
	}

	var waveID [4]byte
	if _, err = io.ReadFull(r, waveID[:]); err != nil {
		return nil, 0, 0, ErrBadRIFF
	}
	if waveID != [4]byte{'W', 'A', 'V', 'E'} {
		return nil, 0, 0, ErrBadRIFF
	}

	var haveFmt, haveData bool
	var audioFormat, bitsPerSample uint16
	var dataSize uint32

	for !haveData {
		var chunkID [4]byte
		if _, err = io.ReadFull(r, chunkID[:]); err != nil {
			return nil, 0, 0, ErrBadRIFF
		}
		var chunkSize uint32
		if err = binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return nil, 0, 0, ErrBadRIFF
		}

		switch chunkID {
		case [4]byte{'f', 'm', 't', ' '}:
			body := make([]byte, chunkSize)
			if _, err = io.ReadFull(r, body); err != nil {
				return nil, 0, 0, ErrBadRIFF
			}
			if len(body) < 16 {
				return nil, 0, 0, ErrBadRIFF
			}
			audioFormat = binary.LittleEndian.Uint16(body[0:2])
			channels = binary.LittleEndian.Uint16(body[2:4])
			sampleRate = binary.LittleEndian.Uint32(body[4:8])
			bitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true

		case [4]byte{'d', 'a', 't', 'a'}:
			if !haveFmt {
				return nil, 0, 0, fmt.Errorf("wavfile: data chunk before fmt chunk")
			}
			dataSize = chunkSize
			raw := make([]byte, dataSize)
			if _, err = io.ReadFull(r, raw); err != nil {
				return nil, 0, 0, ErrBadRIFF
			}
			samples = make([]int16, len(raw)/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
			}
			haveData = true

		default:
			skip := make([]byte, chunkSize)
			if _, err = io.ReadFull(r, skip); err != nil {
				return nil, 0, 0, ErrBadRIFF
			}
		}

		// Chunks are word-aligned: an odd-sized chunk carries one pad byte.
		if chunkSize%2 == 1 && chunkID != [4]byte{'d', 'a', 't', 'a'} {
			var pad [1]byte
			io.ReadFull(r, pad[:])
		}
	}

	if audioFormat != 1 || bitsPerSample != 16 {
		return nil, 0, 0, ErrNotPCM16
	}
	return samples, sampleRate, channels, nil
}
