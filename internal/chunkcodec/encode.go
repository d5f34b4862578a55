// ABOUTME: Encodes one chunk's samples into the spec.md §3 chunk layout
// ABOUTME: Drives selectSlot per scale-factor slot, then packs and pads the result
package chunkcodec

import (
	"encoding/binary"

	"github.com/seacodec/sea-go/internal/bitio"
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

// EncodeResult carries the packed chunk bytes and the LMS states after
// the chunk, so a caller can feed the next chunk without re-deriving
// state from scratch.
type EncodeResult struct {
	Bytes      []byte
	EndStates  []lms.State
	SumSqError int64
}

// Encode packs frames*channels interleaved samples into a single chunk
// of exactly chunkSize bytes, starting from startStates. VBRBias only
// applies in VBR mode; pass 0 for pure minimum-error selection.
//
// Encode attempts exactly the given params; it never reduces bit widths
// itself. Callers that want the "retry with fewer bits" escalation
// spec.md §4.5 describes do so by calling Encode again with a smaller
// Params.ResidualBits or Params.ScaleFactorBits after ErrEncodeOverflow.
func Encode(samples []int16, channels, frames int, startStates []lms.State, params Params, vbrBias float64, cache *dqt.Cache, chunkSize int) (EncodeResult, error) {
	if channels <= 0 || frames < 0 {
		return EncodeResult{}, ErrParamOutOfRange
	}
	if len(startStates) != channels {
		return EncodeResult{}, ErrParamOutOfRange
	}
	if len(samples) != frames*channels {
		return EncodeResult{}, ErrParamOutOfRange
	}
	if err := params.Validate(); err != nil {
		return EncodeResult{}, err
	}

	numSlots := params.NumSlots(frames)
	sfItems := numSlots * channels

	scaleFactors := make([]uint32, sfItems)
	lengthCodes := make([]uint32, sfItems)
	residualCodes := make([][]uint32, sfItems)
	widths := make([]uint8, sfItems)

	endStates := make([]lms.State, channels)
	copy(endStates, startStates)

	var sumSq int64

	for slot := 0; slot < numSlots; slot++ {
		slotStart := slot * int(params.ScaleFactorFrames)
		framesInSlot := int(params.ScaleFactorFrames)
		if slotStart+framesInSlot > frames {
			framesInSlot = frames - slotStart
		}

		for c := 0; c < channels; c++ {
			targets := make([]int16, framesInSlot)
			for f := 0; f < framesInSlot; f++ {
				targets[f] = samples[(slotStart+f)*channels+c]
			}

			choice, err := selectSlot(endStates[c], cache, params, vbrBias, targets)
			if err != nil {
				return EncodeResult{}, err
			}

			idx := slot*channels + c
			scaleFactors[idx] = choice.ScaleFactor
			lengthCodes[idx] = choice.LengthCode
			widths[idx] = choice.Width
			residualCodes[idx] = choice.Codes
			endStates[c] = choice.EndState
			sumSq += choice.SumSqErr
		}
	}

	body := bitio.NewWriter()

	var header [FixedHeaderSize]byte
	header[0] = byte(params.Mode)
	header[1] = params.ScaleFactorBits<<4 | params.ResidualBits
	header[2] = params.ScaleFactorFrames
	header[3] = Reserved

	out := make([]byte, 0, chunkSize)
	out = append(out, header[:]...)

	for c := 0; c < channels; c++ {
		history, weights := startStates[c].EncodeWire()
		var buf [LMSStateSize]byte
		for i := 0; i < lms.Taps; i++ {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(history[i]))
		}
		for i := 0; i < lms.Taps; i++ {
			binary.LittleEndian.PutUint16(buf[(lms.Taps+i)*2:], uint16(weights[i]))
		}
		out = append(out, buf[:]...)
	}

	sfWriter := bitio.NewWriter()
	for _, sf := range scaleFactors {
		sfWriter.WriteBits(sf, uint(params.ScaleFactorBits))
	}
	out = append(out, sfWriter.Bytes()...)

	if params.Mode == VBR {
		lcWriter := bitio.NewWriter()
		for _, lc := range lengthCodes {
			lcWriter.WriteBits(lc, 2)
		}
		out = append(out, lcWriter.Bytes()...)
	}

	for idx, codes := range residualCodes {
		width := uint(widths[idx])
		for _, code := range codes {
			body.WriteBits(code, width)
		}
	}
	out = append(out, body.Bytes()...)

	if len(out) > chunkSize {
		return EncodeResult{}, ErrEncodeOverflow
	}
	for len(out) < chunkSize {
		out = append(out, 0)
	}

	return EncodeResult{Bytes: out, EndStates: endStates, SumSqError: sumSq}, nil
}
