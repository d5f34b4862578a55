// ABOUTME: Decodes one chunk's bytes into reconstructed PCM samples
// ABOUTME: Implements spec.md §4.4 step by step
package chunkcodec

import (
	"encoding/binary"

	"github.com/seacodec/sea-go/internal/bitio"
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

// Decode parses a chunk's raw bytes and reconstructs frames*channels
// interleaved samples. The per-channel LMS states are restored from the
// chunk header and advanced through the chunk; states only fixes the
// channel count (its contents are not read and it is not mutated). It
// returns the advanced states.
func Decode(data []byte, channels, frames int, states []lms.State, cache *dqt.Cache) ([]int16, []lms.State, error) {
	if channels <= 0 || frames < 0 {
		return nil, nil, ErrParamOutOfRange
	}
	if len(states) != channels {
		return nil, nil, ErrParamOutOfRange
	}
	if len(data) < FixedHeaderSize+LMSStateSize*channels {
		return nil, nil, ErrTruncated
	}

	typ := Type(data[0])
	if typ != CBR && typ != VBR {
		return nil, nil, ErrBadChunkType
	}
	sfRes := data[1]
	sfFrames := data[2]
	reserved := data[3]
	if reserved != Reserved {
		return nil, nil, ErrBadReserved
	}

	sfBits := sfRes >> 4
	baseRB := sfRes & 0x0F
	params := Params{Mode: typ, ScaleFactorBits: sfBits, ResidualBits: baseRB, ScaleFactorFrames: sfFrames}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	out := make([]lms.State, channels)
	off := FixedHeaderSize
	for c := 0; c < channels; c++ {
		var history, weights [lms.Taps]int16
		for i := 0; i < lms.Taps; i++ {
			history[i] = int16(binary.LittleEndian.Uint16(data[off:]))
			off += 2
		}
		for i := 0; i < lms.Taps; i++ {
			weights[i] = int16(binary.LittleEndian.Uint16(data[off:]))
			off += 2
		}
		out[c].DecodeWire(history, weights)
	}

	numSlots := params.NumSlots(frames)
	sfItems := numSlots * channels

	sfBytes := bitio.PackedLen(sfItems, uint(sfBits))
	if off+sfBytes > len(data) {
		return nil, nil, ErrTruncated
	}
	scaleFactors, err := bitio.Unpack(data[off:off+sfBytes], uint(sfBits), sfItems)
	if err != nil {
		return nil, nil, err
	}
	off += sfBytes

	var lengthCodes []uint32
	if typ == VBR {
		vbrBytes := bitio.PackedLen(sfItems, 2)
		if off+vbrBytes > len(data) {
			return nil, nil, ErrTruncated
		}
		lengthCodes, err = bitio.Unpack(data[off:off+vbrBytes], 2, sfItems)
		if err != nil {
			return nil, nil, err
		}
		off += vbrBytes
	}

	samples := make([]int16, frames*channels)
	residualReader := bitio.NewReader(data[off:])

	for slot := 0; slot < numSlots; slot++ {
		slotStart := slot * int(sfFrames)
		framesInSlot := int(sfFrames)
		if slotStart+framesInSlot > frames {
			framesInSlot = frames - slotStart
		}

		for c := 0; c < channels; c++ {
			idx := slot*channels + c
			width := baseRB
			if typ == VBR {
				width = residualWidth(baseRB, lengthCodes[idx])
				if width < 1 || width > 8 {
					return nil, nil, ErrParamOutOfRange
				}
			}

			table, err := cache.Get(sfBits, width)
			if err != nil {
				return nil, nil, err
			}
			if int(scaleFactors[idx]) >= len(table.Rows) {
				return nil, nil, ErrParamOutOfRange
			}
			row := table.Rows[scaleFactors[idx]]

			for f := 0; f < framesInSlot; f++ {
				code, err := residualReader.ReadBits(uint(width))
				if err != nil {
					return nil, nil, ErrTruncated
				}
				predicted := out[c].Predict()
				dequantized := row[code]
				reconstructed := lms.ClampInt16(predicted + dequantized)
				samples[(slotStart+f)*channels+c] = reconstructed
				out[c].Update(int32(reconstructed), dequantized)
			}
		}
	}

	return samples, out, nil
}
