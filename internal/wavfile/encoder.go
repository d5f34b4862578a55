// ABOUTME: Writes interleaved int16 PCM samples as a canonical WAV file
// ABOUTME: Same binary.Write-a-struct approach as e-mu-soundbanks's wav.Encoder
package wavfile

import (
	"encoding/binary"
	"io"
)

// Write encodes interleaved int16 PCM samples as a 44-byte-header WAV
// file and writes it to w.
func Write(w io.Writer, samples []int16, sampleRate uint32, channels uint16) error {
	const bitsPerSample = 16
	dataSize := uint32(len(samples)) * 2
	byteRate := sampleRate * uint32(channels) * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	header := Header{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      36 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   channels,
		SampleRate:    sampleRate,
		ByteRate:      byteRate,
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}
